package cat

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Write prints every line to w followed by a newline.
func Write(w io.Writer, lines Lines) error {
	bw := bufio.NewWriter(w)

	for _, line := range lines {
		_, err := bw.WriteString(line)
		if err != nil {
			return errors.Wrap(err, "unable to write line")
		}

		err = bw.WriteByte('\n')
		if err != nil {
			return errors.Wrap(err, "unable to write line terminator")
		}
	}

	return errors.Wrap(bw.Flush(), "unable to flush output")
}
