// Package app runs catpipe: it turns a configuration into a stage pipeline and drives it over the requested
// sources.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-catpipe/internal/config"
	"github.com/askiada/go-catpipe/pkg/cat"
	"github.com/askiada/go-catpipe/pkg/pipeline"
	"github.com/askiada/go-catpipe/pkg/pipeline/drawer"
	"github.com/askiada/go-catpipe/pkg/pipeline/measure"
	"github.com/askiada/go-catpipe/pkg/pipeline/model"
)

// Stage names of the steps framing the operations.
const (
	AssembleStage = "assemble"
	WriteStage    = "write"
)

// App holds the configuration and the streams of a run.
type App struct {
	cfg       config.Config
	assembler *cat.Assembler
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
}

// New creates an App. Logs and reports go to stderr.
func New(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) *App {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, stderr)
	logger.Debug("Logger configured.", "level", cfg.Log.Level, "format", cfg.Log.Format)

	return &App{
		cfg:       cfg,
		assembler: cat.NewAssembler(stdin),
		stdout:    stdout,
		stderr:    stderr,
		logger:    logger,
	}
}

// Run concatenates sources to stdout, applying the enabled operations. Standard input is read when sources is empty.
//
// Nothing is written when a source cannot be read; the returned error then wraps a *cat.ReadFailure.
func (a *App) Run(ctx context.Context, sources []string) error {
	ops := cat.Operations(a.cfg.Display.Options())
	a.logger.Debug("Run started.", "sources", sources, "operations", len(ops))

	var msr *measure.DefaultMeasure

	pipeOpts := []model.PipelineOption{}

	if a.cfg.Report.Timings || a.cfg.Report.Graph != "" {
		msr = measure.NewDefaultMeasure()
		pipeOpts = append(pipeOpts, measure.PipelineMeasure(msr))
	}

	if a.cfg.Report.Graph != "" {
		pipeOpts = append(pipeOpts, drawer.PipelineDrawer(drawer.NewDOTDrawer(a.cfg.Report.Graph), msr))
	}

	pipe, err := pipeline.New(ctx, pipeOpts...)
	if err != nil {
		return errors.Wrap(err, "unable to create pipeline")
	}

	err = a.buildPipeline(pipe, sources, ops)
	if err != nil {
		return err
	}

	err = pipe.Run()
	if err != nil {
		return errors.Wrap(err, "unable to run pipeline")
	}

	if a.cfg.Report.Timings {
		err = measure.Report(a.stderr, msr)
		if err != nil {
			return errors.Wrap(err, "unable to report timings")
		}
	}

	if a.cfg.Report.Graph != "" {
		a.logger.Info("Stage graph written.", "file", a.cfg.Report.Graph)
	}

	return nil
}

func (a *App) buildPipeline(pipe *pipeline.Pipeline, sources []string, ops []cat.Operation) error {
	step, err := pipeline.AddRootStep(pipe, AssembleStage, func(ctx context.Context, rootChan chan<- cat.Lines) error {
		lines, err := a.assembler.Assemble(sources)
		if err != nil {
			return err
		}

		a.logger.Debug("Sources assembled.", "lines", len(lines))

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case rootChan <- lines:
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "unable to add %s step", AssembleStage)
	}

	for _, op := range ops {
		step, err = pipeline.AddStepOneToOne(pipe, op.String(), step, func(ctx context.Context, lines cat.Lines) (cat.Lines, error) {
			out := op.Apply(lines)
			a.logger.Debug("Operation applied.", "operation", op.String(), "lines_in", len(lines), "lines_out", len(out))

			return out, nil
		})
		if err != nil {
			return errors.Wrapf(err, "unable to add %s step", op)
		}
	}

	err = pipeline.AddSink(pipe, WriteStage, step, func(ctx context.Context, lines cat.Lines) error {
		err := cat.Write(a.stdout, lines)
		if err != nil {
			return err
		}

		a.logger.Debug("Lines written.", "lines", len(lines))

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "unable to add %s step", WriteStage)
	}

	return nil
}
