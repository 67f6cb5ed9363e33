package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/suiterun/internal/build"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/executor"
	"github.com/AndreyAkinshin/suiterun/internal/output"
)

func (a *app) buildCommand() *cobra.Command {
	var timeout time.Duration
	var stream bool
	cmd := &cobra.Command{
		Use:   "build [platform...]",
		Short: "Build the firmware for each platform, stopping at the first failure",
		Long: "build runs build.command once per platform, in order. Platforms default to " +
			"build.platforms; a failed build skips the remaining platforms.",
		Example: "  suiterun build\n  suiterun build native esp32",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			cfg := p.Config
			if timeout > 0 {
				cfg.Build.Timeout = timeout
			}

			platforms := cfg.Build.Platforms
			if len(args) > 0 {
				platforms = args
			}
			if len(platforms) == 0 {
				return errors.Config("no platforms to build: set build.platforms or pass platform names")
			}

			logger, err := a.logger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var execOpts []executor.Option
			if stream {
				execOpts = append(execOpts, executor.WithEcho(a.out.Err()))
			}
			builder := build.NewBuilder(executor.New(logger, execOpts...),
				cfg.Build.Command, p.Root, cfg.Build.Timeout, logger)

			results := builder.BuildAll(cmd.Context(), platforms, &buildProgress{out: a.out, prefix: "build"})

			a.out.Section("Build Summary")
			for _, r := range results {
				a.out.SummaryAction(r.Platform, r.Succeeded(), buildDuration(r), buildNote(r))
			}

			if failed := firstFailure(results); failed != nil {
				return errors.SuiteError(failed.Platform, builder.Command(failed.Platform).String(), buildFailure(*failed))
			}
			a.out.FinalSuccess("All %d platform(s) built successfully.", len(results))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-platform timeout (overrides build.timeout)")
	cmd.Flags().BoolVar(&stream, "stream", false, "echo build output to stderr while building")
	return cmd
}

// firstFailure returns the platform that stopped the build, or nil.
func firstFailure(results []build.PlatformResult) *build.PlatformResult {
	if build.AllSucceeded(results) {
		return nil
	}
	for i := range results {
		if s := results[i].Status; s != build.StatusSucceeded && s != build.StatusSkipped {
			return &results[i]
		}
	}
	return nil
}

func buildFailure(r build.PlatformResult) string {
	return stepFailure("build", r)
}

func stepFailure(what string, r build.PlatformResult) string {
	switch r.Status {
	case build.StatusFailed:
		return fmt.Sprintf("%s failed with exit code %d", what, r.ExitCode)
	case build.StatusTimedOut:
		return what + " timed out"
	default:
		return fmt.Sprintf("%s could not be launched: %v", what, r.Err)
	}
}

func buildDuration(r build.PlatformResult) string {
	if r.Status == build.StatusSkipped {
		return "-"
	}
	return r.Duration.Round(10 * time.Millisecond).String()
}

func buildNote(r build.PlatformResult) string {
	switch r.Status {
	case build.StatusFailed:
		return fmt.Sprintf("exit %d", r.ExitCode)
	case build.StatusSucceeded:
		return ""
	default:
		return r.Status.String()
	}
}

// buildProgress prints a banner before and a status line after each build
// or step. prefix, when set, leads the banner label.
type buildProgress struct {
	out    *output.Writer
	prefix string
}

func (b *buildProgress) BuildStarted(platform string, cmd executor.Command) {
	label := platform
	if b.prefix != "" {
		label = b.prefix + " " + platform
	}
	b.out.Banner(label, cmd.String())
}

func (b *buildProgress) BuildFinished(r build.PlatformResult) {
	switch r.Status {
	case build.StatusLaunchFailed:
		b.out.StepResult(false, "%s could not be launched: %v", r.Platform, r.Err)
	case build.StatusTimedOut:
		b.out.StepResult(false, "%s timed out after %s", r.Platform, r.Duration.Round(time.Millisecond))
	case build.StatusSkipped:
		b.out.Warning("%s skipped: %v", r.Platform, r.Err)
	default:
		b.out.StepResult(r.Succeeded(), "%s exited with code %d", r.Platform, r.ExitCode)
		if !r.Succeeded() {
			b.out.Detail("STDERR", r.Stderr)
		}
	}
}
