package model

// StepType tells which role a step plays in a pipeline.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step to the pipeline options.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

// StartStep and EndStep are virtual steps framing every pipeline: root steps descend from StartStep and sinks lead
// to EndStep.
var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is a registered step and the channel carrying its output.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
