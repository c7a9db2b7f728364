package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-catpipe/pkg/pipeline/model"
)

func prepareRootStep[O any](pipe *Pipeline, step *model.Step[O]) error {
	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.StartStep.Details, step.Details)
		if err != nil {
			return errors.Wrap(err, "unable to run before step function")
		}
	}

	return nil
}

// AddRootStep adds the first step of the pipeline. stepFn pushes values to rootChan, which is closed once stepFn
// returns.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error) (*model.Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.RootStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}

	err := prepareRootStep(p, step)
	if err != nil {
		return nil, err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	p.goFn = append(p.goFn, func(ctx context.Context) {
		defer func() {
			close(step.Output)
			close(errC)
		}()

		startFn := time.Now()

		err := stepFn(ctx, step.Output)
		if err != nil {
			errC <- err

			return
		}

		endFn := time.Since(startFn)
		for _, opt := range p.opts {
			err := opt.OnStepOutput(model.StartStep.Details, step.Details, endFn, endFn)
			if err != nil {
				errC <- errors.Wrap(err, "unable to run on step output function")

				return
			}
		}
	})
	p.errcList.add(decoratedError)

	return step, nil
}
