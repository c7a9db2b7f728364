// Package config loads the optional catpipe configuration file.
//
// The file is TOML. Every key is optional; a missing file section keeps its defaults:
//
//	[display]
//	squeeze_blanks = true
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[report]
//	timings = true
//	graph = "stages.gv"
//
// Command line flags are merged on top of the file with Merge.
package config
