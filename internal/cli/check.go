package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/config"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/lint"
	"github.com/AndreyAkinshin/suiterun/internal/manifest"
	"github.com/AndreyAkinshin/suiterun/internal/project"
)

type checkOptions struct {
	SkipLint     bool
	SkipManifest bool
	MaxFindings  int
}

func (a *app) checkCommand() *cobra.Command {
	o := &checkOptions{MaxFindings: -1}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check source style, naming conventions and the library manifest",
		Long: "check scans the configured source directories for tabs, long lines, trailing " +
			"whitespace and naming convention violations, and verifies that the library " +
			"manifest declares every required field. It exits non-zero when anything is found.",
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			logger, err := a.logger(p.Config.Log.Level, p.Config.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			limit := p.Config.Lint.MaxFindings
			if o.MaxFindings >= 0 {
				limit = o.MaxFindings
			}

			problems := 0
			if !o.SkipLint {
				n, err := a.checkSources(p, logger, limit)
				if err != nil {
					return err
				}
				problems += n
			}
			if !o.SkipManifest {
				n, err := a.checkManifest(p)
				if err != nil {
					return err
				}
				problems += n
			}

			if problems > 0 {
				a.out.FinalFailure("%d problem(s) found.", problems)
				return &exitStatus{code: errors.ExitRuntimeError}
			}
			a.out.FinalSuccess("All checks passed.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.SkipLint, "skip-lint", false, "skip source style and naming checks")
	cmd.Flags().BoolVar(&o.SkipManifest, "skip-manifest", false, "skip library manifest validation")
	cmd.Flags().IntVar(&o.MaxFindings, "max-findings", -1, "findings listed per section (overrides lint.max_findings)")
	return cmd
}

func (a *app) checkSources(p *project.Project, logger *zap.Logger, limit int) (int, error) {
	cfg := p.Config.Lint
	checker := lint.NewChecker(lint.Options{
		SourceDirs:             cfg.SourceDirs,
		Extensions:             cfg.Extensions,
		MaxLineLength:          cfg.MaxLineLength,
		ClassNameExceptions:    cfg.ClassNameExceptions,
		ConstantNameExceptions: cfg.ConstantNameExceptions,
	}, logger)

	result, err := checker.Check(p.Root)
	if err != nil {
		return 0, errors.Wrap(err, fmt.Sprintf("source check failed: %v", err))
	}

	a.printFindings("Style", result, lint.StyleRules, limit)
	a.printFindings("Naming", result, lint.NamingRules, limit)
	a.out.Info("checked %d file(s)", result.FilesChecked)
	return result.Count(), nil
}

// printFindings lists up to limit findings for rules and counts the rest.
func (a *app) printFindings(title string, result lint.Result, rules []lint.Rule, limit int) {
	var findings []lint.Finding
	for _, f := range result.Findings {
		for _, r := range rules {
			if f.Rule == r {
				findings = append(findings, f)
				break
			}
		}
	}

	a.out.Section(title)
	if len(findings) == 0 {
		a.out.Println("  no issues")
		return
	}
	for i, f := range findings {
		if i == limit {
			a.out.Println("  ... and %d more", len(findings)-limit)
			break
		}
		a.out.Println("  %s", f)
	}
}

func (a *app) checkManifest(p *project.Project) (int, error) {
	cfg := p.Config.Manifest
	validator, err := manifest.NewValidator(cfg.RequiredFields)
	if err != nil {
		return 0, errors.ConfigWrap(err, "invalid manifest.required_fields")
	}

	a.out.Section("Manifest")
	problems, err := validator.ValidateFile(p.Path(cfg.Path))
	if stderrors.Is(err, manifest.ErrNotFound) {
		if cfg.Path != config.DefaultManifestPath {
			return 0, errors.NotFound("manifest", cfg.Path)
		}
		a.out.Println("  %s not present, skipped", cfg.Path)
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, err.Error())
	}

	if len(problems) == 0 {
		a.out.Println("  %s is valid", cfg.Path)
		return 0, nil
	}
	for _, pr := range problems {
		a.out.Println("  %s: %s", cfg.Path, pr)
	}
	return len(problems), nil
}
