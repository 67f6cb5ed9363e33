package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/suiterun/internal/build"
	"github.com/AndreyAkinshin/suiterun/internal/config"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/executor"
)

type stepOptions struct {
	Timeout time.Duration
	Stream  bool
}

func bindStepFlags(cmd *cobra.Command, opts *stepOptions) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "step timeout (overrides build.timeout)")
	cmd.Flags().BoolVar(&opts.Stream, "stream", false, "echo command output to stderr while running")
}

// runStep loads the project and runs the step built from it. The project
// root is returned alongside the result.
func (a *app) runStep(cmd *cobra.Command, opts stepOptions, step func(config.BuildConfig) build.Step) (build.PlatformResult, string, error) {
	p, err := a.loadProject()
	if err != nil {
		return build.PlatformResult{}, "", err
	}
	cfg := p.Config
	timeout := cfg.Build.Timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	logger, err := a.logger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return build.PlatformResult{}, "", err
	}
	defer func() { _ = logger.Sync() }()

	var execOpts []executor.Option
	if opts.Stream {
		execOpts = append(execOpts, executor.WithEcho(a.out.Err()))
	}
	builder := build.NewBuilder(executor.New(logger, execOpts...), cfg.Build.Command, p.Root, timeout, logger)

	s := step(cfg.Build)
	result := builder.RunStep(cmd.Context(), s, &buildProgress{out: a.out})
	if !result.Succeeded() && result.Status != build.StatusSkipped {
		return result, p.Root, errors.SuiteError(s.Name, builder.StepCommand(s).String(), stepFailure(s.Name, result))
	}
	return result, p.Root, nil
}

func (a *app) coverageCommand() *cobra.Command {
	var opts stepOptions
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Run the coverage test environment and list the gcov reports",
		Long: "coverage runs build.coverage_command from the project root, then lists the " +
			".gcov files it left behind.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, root, err := a.runStep(cmd, opts, func(b config.BuildConfig) build.Step {
				return build.Step{Name: "coverage", Command: b.CoverageCommand}
			})
			if err != nil {
				return err
			}

			files, err := build.CoverageFiles(root)
			if err != nil {
				return errors.Wrap(err, "scanning coverage reports: "+err.Error())
			}
			if len(files) == 0 {
				a.out.Warning("no .gcov files found under %s", root)
				return nil
			}
			a.out.Section("Coverage Reports")
			a.out.List(files)
			a.out.FinalSuccess("Found %d coverage file(s).", len(files))
			return nil
		},
	}
	bindStepFlags(cmd, &opts)
	return cmd
}

func (a *app) analyzeCommand() *cobra.Command {
	var opts stepOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the static analyser, skipping it when it is not installed",
		Long:  "analyze runs build.analysis_command from the project root.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, _, err := a.runStep(cmd, opts, func(b config.BuildConfig) build.Step {
				return build.Step{Name: "analysis", Command: b.AnalysisCommand, Optional: true}
			})
			if err != nil {
				return err
			}
			if result.Status == build.StatusSkipped {
				return nil
			}
			a.out.FinalSuccess("Static analysis passed.")
			return nil
		},
	}
	bindStepFlags(cmd, &opts)
	return cmd
}
