package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-catpipe/pkg/pipeline/model"
)

var concurrencyCases = map[string]struct {
	concurrent int
}{
	"sequential":     {concurrent: 1},
	"sequential v2":  {concurrent: 0},
	"concurrent 2":   {concurrent: 2},
	"concurrent 100": {concurrent: 100},
}

func TestOneToOne(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10), Details: &model.StepInfo{Name: "input"}}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)
				err := runOneToOne(ctx, &Pipeline{}, input, output, func(ctx context.Context, i int) (int, error) {
					return i, nil
				})
				assert.NoError(t, err)
			}()

			assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, <-got)
		})
	}
}

func TestOneToOneSequentialKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := &model.Step[int]{Output: createInputChan(t, 50), Details: &model.StepInfo{Name: "input"}}
	got := make(chan []int, 1)
	output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: 1}}

	go func() {
		got <- processOutputChan(t, output.Output)
	}()

	go func() {
		defer close(output.Output)
		err := runOneToOne(ctx, &Pipeline{}, input, output, func(ctx context.Context, i int) (int, error) {
			return i * 2, nil
		})
		assert.NoError(t, err)
	}()

	expected := make([]int, 50)
	for i := range expected {
		expected[i] = i * 2
	}

	assert.Equal(t, expected, <-got)
}

func TestOneToOneCancelInput(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			input := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Name: "input"}}
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			err := runOneToOne(ctx, &Pipeline{}, input, output, func(ctx context.Context, i int) (int, error) {
				return i, nil
			})
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestOneToOneError(t *testing.T) {
	t.Parallel()

	for name, tc := range concurrencyCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			input := &model.Step[int]{Output: createInputChan(t, 10), Details: &model.StepInfo{Name: "input"}}
			got := make(chan []int, 1)
			output := &model.Step[int]{Output: make(chan int), Details: &model.StepInfo{Concurrent: tc.concurrent}}

			go func() {
				got <- processOutputChan(t, output.Output)
			}()

			go func() {
				defer close(output.Output)
				err := runOneToOne(ctx, &Pipeline{}, input, output, func(ctx context.Context, i int) (int, error) {
					if i == 5 {
						return 0, assert.AnError
					}

					return i, nil
				})
				assert.ErrorIs(t, err, assert.AnError)
			}()

			assert.NotContains(t, <-got, 5)
		})
	}
}
