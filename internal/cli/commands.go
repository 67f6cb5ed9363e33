package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/suiterun/internal/config"
	"github.com/AndreyAkinshin/suiterun/internal/docs"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/report"
	"github.com/AndreyAkinshin/suiterun/internal/testparser"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured test suites in run order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"#", "Suite", "Environment", "Timeout", "Description"})
			for i, spec := range p.Config.SuiteSpecs() {
				timeout := "default"
				if spec.Timeout > 0 {
					timeout = spec.Timeout.String()
				}
				tw.AppendRow(table.Row{i + 1, spec.Name(), spec.Environment, timeout, spec.Description})
			}
			a.out.Println("%s", tw.Render())
			return nil
		},
	}
}

func (a *app) parseCommand() *cobra.Command {
	var parserName string
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Extract test counts from saved runner transcripts",
		Long: "parse reads transcripts from files, or from standard input when no file " +
			"is given or the file is '-', and prints the counts found in their summary " +
			"lines, summed over all inputs. It exits non-zero when an input has no " +
			"summary or tests failed.",
		Example: "  pio test -e native | suiterun parse\n" +
			"  suiterun parse logs/test_safety.log logs/test_basic.log\n" +
			"  suiterun parse --parser unity build/test.log",
		RunE: func(_ *cobra.Command, args []string) error {
			parser := testparser.NewRegistry().GetParser(parserName)
			if parser == nil {
				return errors.Configf("unknown parser %q (available: %s)", parserName,
					strings.Join(testparser.NewRegistry().Names(), ", "))
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}

			var total testparser.TestCounts
			for _, name := range args {
				data, err := a.readInput(name)
				if err != nil {
					return err
				}

				counts := parser.Parse(string(data))
				if counts.Malformed {
					return errors.Newf("inconsistent test counts in the %s summary of %s", parser.Name(), inputLabel(name))
				}
				if !counts.Parsed {
					a.out.ErrorPrefix("no test summary found in %s", inputLabel(name))
					a.out.Hint("expected a line such as '10 test cases: 8 succeeded'")
					return &exitStatus{code: errors.ExitRuntimeError}
				}
				total.Add(&counts)
			}

			a.printCounts(total)
			if total.Failed > 0 {
				return &exitStatus{code: errors.ExitRuntimeError}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parserName, "parser", testparser.DefaultParserName, "transcript format: platformio, unity")
	return cmd
}

const stdinName = "-"

func inputLabel(name string) string {
	if name == stdinName {
		return "standard input"
	}
	return name
}

func (a *app) readInput(name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to read standard input: %v", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.NotFound("transcript", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to read transcript: %v", err))
	}
	return data, nil
}

func (a *app) printCounts(c testparser.TestCounts) {
	rate, ok := 0.0, c.Total > 0
	if ok {
		rate = float64(c.Passed) / float64(c.Total) * 100
	}
	a.out.Println("Total:   %d", c.Total)
	a.out.Println("Passed:  %d", c.Passed)
	a.out.Println("Failed:  %d", c.Failed)
	if c.Skipped > 0 {
		a.out.Println("Skipped: %d", c.Skipped)
	}
	a.out.Println("Rate:    %s", report.FormatRate(rate, ok))
}

func (a *app) docsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List the project's documentation files",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}

			cfg := p.Config.Docs
			documents, err := docs.List(p.Root, cfg.Directory, cfg.Pattern)
			var missing *docs.MissingFileError
			if stderrors.As(err, &missing) {
				return errors.NotFound("documentation directory", missing.Path)
			}
			if err != nil {
				return errors.Wrap(err, err.Error())
			}

			a.out.Section("Documentation")
			if len(documents) == 0 {
				a.out.Println("  (no files matching %s in %s)", cfg.Pattern, cfg.Directory)
				return nil
			}
			width := 0
			for _, d := range documents {
				width = max(width, len(d.Path))
			}
			for _, d := range documents {
				a.out.Println("  %-*s  %s", width, d.Path, d.Title)
			}
			return nil
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect " + config.DefaultFileName,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + config.DefaultFileName + " with the default suites",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			dir := a.opts.Dir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return errors.Environmentf("cannot determine working directory: %v", err)
				}
				dir = wd
			}
			path := a.opts.ConfigFile
			if path == "" {
				path = filepath.Join(dir, config.DefaultFileName)
			}

			if err := config.WriteStarter(path, force); err != nil {
				if stderrors.Is(err, config.ErrConfigExists) {
					a.out.ErrorPrefix("%v", err)
					a.out.Hint("use --force to overwrite")
					return &exitStatus{code: errors.ExitConfigError}
				}
				return errors.Wrap(err, err.Error())
			}
			a.out.ValidationSuccess("wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after defaults and overrides",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			data, err := config.Marshal(p.Config)
			if err != nil {
				return errors.Wrap(err, err.Error())
			}
			if p.ConfigFile == "" {
				a.out.Info("no %s found; showing defaults", config.DefaultFileName)
			}
			a.out.Print("%s", data)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
