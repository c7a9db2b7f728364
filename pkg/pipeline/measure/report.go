package measure

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-catpipe/pkg/pipeline/model"
)

// Report writes one line per measured step, in registration order, with the average computation time of the step.
// The virtual start and end steps are skipped.
func Report(wrt io.Writer, msr Measure) error {
	for _, name := range msr.Names() {
		if name == model.StartStep.Details.Name || name == model.EndStep.Details.Name {
			continue
		}

		mt := msr.GetMetric(name)
		if mt == nil {
			continue
		}

		_, err := fmt.Fprintf(wrt, "%-16s %d run(s), avg %s\n", name, mt.Total(), mt.AVGDuration())
		if err != nil {
			return errors.Wrapf(err, "unable to report step %s", name)
		}
	}

	return nil
}
