// Package pipeline runs a chain of named steps connected by channels.
//
// A pipeline starts with a root step that produces values, passes them through any number of one to one steps and
// ends with a sink that consumes them. Steps are registered first and only start when Run is called, so the whole
// chain is wired before the first value flows.
//
// The pipeline stops on the first error. Every error is decorated with the name of the step that raised it while
// keeping its cause, so callers can still match it with errors.As and errors.Is.
//
// Pipeline options (see the model package) observe each step as it is prepared and each value it outputs. The
// measure and drawer packages provide options recording step durations and rendering the step graph.
package pipeline
