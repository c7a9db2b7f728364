package pipeline

import "github.com/askiada/go-catpipe/pkg/pipeline/model"

// StepOption configures a step before it is registered.
type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets how many goroutines consume the input of a step. Values below 2 keep the step sequential,
// which preserves the order of its input.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}
