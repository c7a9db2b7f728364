// Package model provides the data structures shared by the pipeline package and its options.
// It defines the steps of a pipeline, the information each step exposes, and the hooks a pipeline option implements.
package model
