package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-catpipe/pkg/pipeline"
	"github.com/askiada/go-catpipe/pkg/pipeline/drawer"
	"github.com/askiada/go-catpipe/pkg/pipeline/measure"
)

func TestAddRootStepNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddRootStep(nil, "root step", rootFn(10))
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddRootStep(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "root step", rootFn(10))
	require.NoError(t, err)

	var got []int

	err = pipeline.AddSink(pipe, "sink", rootStep, func(ctx context.Context, input int) error {
		got = append(got, input)

		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

type stepFailure struct {
	step string
}

func (e *stepFailure) Error() string {
	return "failure in " + e.step
}

func TestAddRootStepError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "root step", func(ctx context.Context, rootChan chan<- int) error {
		return &stepFailure{step: "root"}
	})
	require.NoError(t, err)

	calls := 0
	err = pipeline.AddSink(pipe, "sink", rootStep, func(ctx context.Context, input int) error {
		calls++

		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root step")

	var failure *stepFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "root", failure.step)
	assert.Zero(t, calls)
}

func TestAddRootStepCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "root step", func(ctx context.Context, rootChan chan<- int) error {
		for i := range 10 {
			if i == 5 {
				cancel()

				return assert.AnError
			}
			rootChan <- i
		}

		return nil
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", rootStep, func(ctx context.Context, input int) error {
		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	assert.Error(t, err)
}

func TestAddStepOneToOneNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddStepOneToOne(nil, "step", createInputStep(t, 0), func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddStepOneToOneNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)
	_, err = pipeline.AddStepOneToOne[int, int](pipe, "step", nil, func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestAddStepOneToOne(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":    {concurrent: 1},
		"concurrent 10": {concurrent: 10},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(context.Background())
			require.NoError(t, err)

			step, err := pipeline.AddStepOneToOne(pipe, "double", createInputStep(t, 10), func(ctx context.Context, input int) (int, error) {
				return input * 2, nil
			}, pipeline.StepConcurrency[int](tc.concurrent))
			require.NoError(t, err)

			done := make(chan []int, 1)

			go func() {
				done <- processOutputChan(t, step.Output)
			}()

			err = pipe.Run()
			require.NoError(t, err)
			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-done)
		})
	}
}

func TestAddStepOneToOneError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "root step", rootFn(10))
	require.NoError(t, err)

	step, err := pipeline.AddStepOneToOne(pipe, "failing step", rootStep, func(ctx context.Context, input int) (int, error) {
		if input == 5 {
			return 0, assert.AnError
		}

		return input, nil
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", step, func(ctx context.Context, input int) error {
		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failing step")
}

func TestAddSinkNilPipe(t *testing.T) {
	t.Parallel()

	err := pipeline.AddSink(nil, "sink", createInputStep(t, 0), func(ctx context.Context, input int) error {
		return nil
	})
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddSinkNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)
	err = pipeline.AddSink[int](pipe, "sink", nil, func(ctx context.Context, input int) error {
		return nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestAddSinkError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "root step", rootFn(10))
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", rootStep, func(ctx context.Context, input int) error {
		if input == 5 {
			return assert.AnError
		}

		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	assert.ErrorIs(t, err, assert.AnError)
}

func buildPipeline(t *testing.T, pipe *pipeline.Pipeline, prefix string) *[]int {
	t.Helper()

	got := []int{}

	rootStep, err := pipeline.AddRootStep(pipe, prefix+" - root step", rootFn(5))
	require.NoError(t, err)

	step1, err := pipeline.AddStepOneToOne(pipe, prefix+" - step 1", rootStep, func(ctx context.Context, input int) (int, error) {
		return input * 10, nil
	})
	require.NoError(t, err)

	step2, err := pipeline.AddStepOneToOne(pipe, prefix+" - step 2", step1, func(ctx context.Context, input int) (int, error) {
		return input + 1, nil
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, prefix+" - sink", step2, func(ctx context.Context, input int) error {
		got = append(got, input)

		return nil
	})
	require.NoError(t, err)

	return &got
}

func TestCompletePipeline(t *testing.T) {
	t.Parallel()

	dotFile := filepath.Join(t.TempDir(), "graph.gv")
	m := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(context.Background(), measure.PipelineMeasure(m), drawer.PipelineDrawer(drawer.NewDOTDrawer(dotFile), m))
	require.NoError(t, err)

	gotA := buildPipeline(t, pipe, "A")
	gotB := buildPipeline(t, pipe, "B")

	err = pipe.Run()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 11, 21, 31, 41}, *gotA)
	assert.Equal(t, []int{1, 11, 21, 31, 41}, *gotB)

	assert.Equal(t, []string{
		"start", "end",
		"A - root step", "A - step 1", "A - step 2", "A - sink",
		"B - root step", "B - step 1", "B - step 2", "B - sink",
	}, m.Names())
	assert.EqualValues(t, 5, m.GetMetric("A - step 1").Total())
	assert.EqualValues(t, 5, m.GetMetric("B - sink").Total())

	content, err := os.ReadFile(dotFile)
	require.NoError(t, err)

	graph := string(content)
	assert.True(t, strings.HasPrefix(graph, "strict digraph"))
	assert.Contains(t, graph, `"start" -> "A - root step"`)
	assert.Contains(t, graph, `"A - step 2" -> "A - sink"`)
	assert.Contains(t, graph, `"B - sink" -> "end"`)
}
