// Command catpipe concatenates files or standard input to standard output, optionally numbering lines and making
// tabs, line ends and repeated blank lines visible.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-catpipe/internal/app"
	"github.com/askiada/go-catpipe/internal/config"
	"github.com/askiada/go-catpipe/pkg/cat"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const configEnv = "CATPIPE_CONFIG"

var errPrefix = color.New(color.FgRed, color.Bold)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cmd := newRootCmd(stdin, stdout, stderr, getenv)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)

		return 1
	}

	return 0
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	var (
		flags      config.Flags
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "catpipe [flags] [file ...]",
		Short: "Concatenate files to standard output",
		Long: `catpipe concatenates files to standard output, in order.
With no file, or when file is -, standard input is read.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = getenv(configEnv)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("log-level") {
				flags.LogLevel = ""
			}

			if !cmd.Flags().Changed("log-format") {
				flags.LogFormat = ""
			}

			cfg, err = cfg.Merge(flags)
			if err != nil {
				return errors.Wrap(err, "invalid flags")
			}

			return app.New(cfg, stdin, stdout, stderr).Run(cmd.Context(), args)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.Flags()
	fs.BoolVarP(&flags.Display.ShowAll, "show-all", "A", false, "equivalent to -ET")
	fs.BoolVarP(&flags.Display.ShowEnds, "show-ends", "E", false, "display $ at end of each line")
	fs.BoolVarP(&flags.Display.Number, "number", "n", false, "number all output lines")
	fs.BoolVarP(&flags.Display.NumberNonblank, "number-nonblank", "b", false, "number nonempty output lines, overrides -n")
	fs.BoolVarP(&flags.Display.ShowTabs, "show-tabs", "T", false, "display TAB characters as ^I")
	fs.BoolVarP(&flags.Display.SqueezeBlanks, "squeeze-blanks", "s", false, "suppress repeated empty output lines")

	fs.StringVar(&configPath, "config", "", "TOML configuration file (default $"+configEnv+")")
	fs.StringVar(&flags.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	fs.StringVar(&flags.LogFormat, "log-format", "text", "log format (text|json)")
	fs.BoolVar(&flags.Timings, "timings", false, "print the duration of every stage to standard error")
	fs.StringVar(&flags.Graph, "graph", "", "write the stage graph to this DOT file")

	return cmd
}

// printError writes err to w behind the command name. Read failures only name the requested sources.
func printError(w io.Writer, err error) {
	msg := err.Error()

	var failure *cat.ReadFailure
	if errors.As(err, &failure) {
		msg = failure.Error()
	}

	errPrefix.Fprint(w, "catpipe:") //nolint:errcheck
	fmt.Fprintln(w, " "+msg)       //nolint:errcheck
}
