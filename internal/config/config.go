package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/askiada/go-catpipe/pkg/cat"
)

var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrUnknownKeys      = errors.New("unknown configuration keys")
)

// Display mirrors cat.Options.
type Display struct {
	ShowAll        bool `toml:"show_all"`
	ShowEnds       bool `toml:"show_ends"`
	Number         bool `toml:"number"`
	NumberNonblank bool `toml:"number_nonblank"`
	ShowTabs       bool `toml:"show_tabs"`
	SqueezeBlanks  bool `toml:"squeeze_blanks"`
}

// Options converts the display switches into cat options.
func (d Display) Options() cat.Options {
	return cat.Options{
		ShowAll:        d.ShowAll,
		ShowEnds:       d.ShowEnds,
		Number:         d.Number,
		NumberNonblank: d.NumberNonblank,
		ShowTabs:       d.ShowTabs,
		SqueezeBlanks:  d.SqueezeBlanks,
	}
}

// Or returns the switches enabled in d or in other.
func (d Display) Or(other Display) Display {
	return Display{
		ShowAll:        d.ShowAll || other.ShowAll,
		ShowEnds:       d.ShowEnds || other.ShowEnds,
		Number:         d.Number || other.Number,
		NumberNonblank: d.NumberNonblank || other.NumberNonblank,
		ShowTabs:       d.ShowTabs || other.ShowTabs,
		SqueezeBlanks:  d.SqueezeBlanks || other.SqueezeBlanks,
	}
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Report enables the stage reports of a run.
type Report struct {
	// Timings prints the average duration of every stage to the error stream.
	Timings bool `toml:"timings"`
	// Graph is the DOT file the stage graph is written to. Empty disables it.
	Graph string `toml:"graph"`
}

// Config is the full configuration of a run.
type Config struct {
	Display Display `toml:"display"`
	Log     Log     `toml:"log"`
	Report  Report  `toml:"report"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to load config %s", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		sort.Strings(keys)

		return Config{}, errors.Wrapf(ErrUnknownKeys, "%s: %s", path, strings.Join(keys, ", "))
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

// Validate checks the log section.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(ErrInvalidLogLevel, "%q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidLogFormat, "%q", c.Log.Format)
	}

	return nil
}

// Flags holds the values given on the command line. Empty strings mean the flag was not set.
type Flags struct {
	Display   Display
	LogLevel  string
	LogFormat string
	Timings   bool
	Graph     string
}

// Merge applies flags on top of c. Display switches and Timings are ORed, the other values given on the command
// line replace the ones of c. The result is validated.
func (c Config) Merge(flags Flags) (Config, error) {
	merged := c
	merged.Display = c.Display.Or(flags.Display)
	merged.Report.Timings = c.Report.Timings || flags.Timings

	if flags.Graph != "" {
		merged.Report.Graph = flags.Graph
	}

	if flags.LogLevel != "" {
		merged.Log.Level = flags.LogLevel
	}

	if flags.LogFormat != "" {
		merged.Log.Format = flags.LogFormat
	}

	err := merged.Validate()
	if err != nil {
		return Config{}, err
	}

	return merged, nil
}
