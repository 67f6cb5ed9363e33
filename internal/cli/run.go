package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/aggregate"
	"github.com/AndreyAkinshin/suiterun/internal/config"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/executor"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
	"github.com/AndreyAkinshin/suiterun/internal/metrics"
	"github.com/AndreyAkinshin/suiterun/internal/model"
	"github.com/AndreyAkinshin/suiterun/internal/output"
	"github.com/AndreyAkinshin/suiterun/internal/project"
	"github.com/AndreyAkinshin/suiterun/internal/report"
	"github.com/AndreyAkinshin/suiterun/internal/suite"
	"github.com/AndreyAkinshin/suiterun/internal/testparser"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	Only          []string
	Timeout       time.Duration
	Title         string
	MetricsFile   string
	ShowOutput    bool
	ShowDurations bool
	Stream        bool
}

func bindRunFlags(fs *pflag.FlagSet, o *runOptions) {
	fs.StringArrayVar(&o.Only, "only", nil, "run only the named suite (repeatable)")
	fs.DurationVar(&o.Timeout, "timeout", 0, "default per-suite timeout (overrides runner.timeout)")
	fs.StringVar(&o.Title, "title", "", "report title (overrides report.title)")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus metrics for the run to this file")
	fs.BoolVar(&o.ShowOutput, "show-output", false, "print captured output of failed suites after the report")
	fs.BoolVar(&o.ShowDurations, "durations", false, "add a duration column to the report")
	fs.BoolVar(&o.Stream, "stream", false, "echo runner output to stderr while suites run")
}

func (a *app) runCommand() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured test suites and print the summary",
		Example: "  suiterun run\n" +
			"  suiterun run --only test_safety --only test_basic\n" +
			"  suiterun run --timeout 2m --metrics-file suiterun.prom",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSuites(cmd.Context(), o)
		},
	}
	bindRunFlags(cmd.Flags(), o)
	return cmd
}

// applyRunFlags copies flag overrides into the loaded configuration.
func applyRunFlags(cfg *config.Config, o *runOptions) {
	if o.Timeout > 0 {
		cfg.Runner.Timeout = o.Timeout
	}
	if o.Title != "" {
		cfg.Report.Title = o.Title
	}
	if o.MetricsFile != "" {
		cfg.Report.MetricsFile = o.MetricsFile
	}
	if o.ShowDurations {
		cfg.Report.ShowDurations = true
	}
}

func (a *app) runSuites(ctx context.Context, o *runOptions) error {
	p, err := a.loadProject()
	if err != nil {
		return err
	}
	cfg := p.Config
	applyRunFlags(cfg, o)

	logger, err := a.logger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	specs, err := suite.Select(cfg.SuiteSpecs(), o.Only)
	if err != nil {
		return errors.Configf("%v", err)
	}

	runner, err := a.newSuiteRunner(p, logger, o.Stream)
	if err != nil {
		return err
	}

	logger.Info("run starting",
		zap.Int("suites", len(specs)),
		zap.String(logging.FieldDirectory, p.WorkingDirectory()))

	outcomes := runner.RunAll(ctx, specs, &suiteProgress{out: a.out})
	rep := aggregate.Fold(outcomes)

	text, code := report.Render(outcomes, rep, report.Options{
		Title:         cfg.Report.Title,
		ShowDurations: cfg.Report.ShowDurations,
	})
	a.out.Println("")
	a.out.Print("%s", text)

	if o.ShowOutput {
		a.printFailedOutput(outcomes)
	}

	if cfg.Report.MetricsFile != "" {
		path := p.Path(cfg.Report.MetricsFile)
		rec := metrics.NewRecorder(a.runID)
		rec.Record(outcomes, rep)
		if err := rec.WriteTextfile(path); err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to write metrics: %v", err))
		}
		logger.Info("metrics written", zap.String(logging.FieldPath, path))
	}

	logger.Info("run finished",
		zap.Int("suites", rep.SuiteCount),
		zap.Int("successful_suites", rep.SuccessfulSuites),
		zap.Int(logging.FieldExitCode, code))

	if code != report.ExitAllSucceeded {
		return &exitStatus{code: code}
	}
	return nil
}

func (a *app) newSuiteRunner(p *project.Project, logger *zap.Logger, stream bool) (*suite.Runner, error) {
	cfg := p.Config

	parser := testparser.NewRegistry().GetParser(cfg.Runner.Parser)
	if parser == nil {
		return nil, errors.Configf("unknown parser %q", cfg.Runner.Parser)
	}

	var execOpts []executor.Option
	if stream {
		execOpts = append(execOpts, executor.WithEcho(a.out.Err()))
	}

	return suite.NewRunner(
		executor.New(logger, execOpts...),
		suite.WithParser(parser),
		suite.WithInvocation(suite.Invocation{
			Command:    cfg.Runner.Command,
			FilterArgs: cfg.Runner.FilterArgs,
		}),
		suite.WithDir(p.WorkingDirectory()),
		suite.WithEnv(cfg.Runner.Env),
		suite.WithTimeout(cfg.Runner.Timeout),
		suite.WithLogger(logger),
	), nil
}

// printFailedOutput prints the transcripts of suites that failed or reported
// failing tests.
func (a *app) printFailedOutput(outcomes []model.SuiteOutcome) {
	for _, o := range outcomes {
		if o.Succeeded && !o.HasTestFailures() {
			continue
		}
		a.out.Section(fmt.Sprintf("Output: %s", o.Description))
		a.out.Print("%s", o.Transcript)
		if o.Transcript != "" && o.Transcript[len(o.Transcript)-1] != '\n' {
			a.out.Println("")
		}
		if o.Stderr != "" {
			a.out.Println("--- stderr ---")
			a.out.Print("%s", o.Stderr)
		}
	}
}

// suiteProgress prints a banner before and a status line after each suite.
type suiteProgress struct {
	out *output.Writer
}

func (s *suiteProgress) SuiteStarted(index, count int, spec model.SuiteSpec, cmd executor.Command) {
	s.out.Banner(fmt.Sprintf("[%d/%d] %s", index+1, count, spec.Label()), cmd.String())
}

func (s *suiteProgress) SuiteFinished(_, _ int, o model.SuiteOutcome) {
	switch o.Kind {
	case model.TimedOut:
		s.out.StepResult(false, "%s timed out after %s", o.Name, o.Duration.Round(time.Millisecond))
	case model.LaunchFailed:
		s.out.StepResult(false, "%s could not be launched: %s", o.Name, o.Transcript)
	default:
		s.out.StepResult(o.Succeeded, "%s exited with code %d (%d/%d tests passed)", o.Name, o.ExitCode, o.Passed, o.Total)
		s.out.Detail("STDERR", o.Stderr)
	}
}
