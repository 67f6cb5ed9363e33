// Package cli provides the suiterun command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/config"
	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
	"github.com/AndreyAkinshin/suiterun/internal/output"
	"github.com/AndreyAkinshin/suiterun/internal/project"
)

// Version is set at build time.
var Version = "dev"

const (
	flagConfig    = "config"
	flagDir       = "dir"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagQuiet     = "quiet"
	flagNoColor   = "no-color"
)

// globalOptions holds flags shared by every command.
type globalOptions struct {
	ConfigFile string
	Dir        string
	LogLevel   string
	LogFormat  string
	Quiet      bool
	NoColor    bool
}

// app carries the state of one invocation.
type app struct {
	opts  globalOptions
	out   *output.Writer
	stdin io.Reader
	runID string
}

// exitStatus reports a non-zero exit that has already been explained to the user.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return execute(args, os.Stdin, output.New())
}

func execute(args []string, stdin io.Reader, out *output.Writer) int {
	a := &app{
		out:   out,
		stdin: stdin,
		runID: uuid.NewString(),
	}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(out.Out())
	root.SetErr(out.Err())

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return errors.ExitSuccess
	}

	var status *exitStatus
	if stderrors.As(err, &status) {
		return status.code
	}

	out.ErrorPrefix("%v", err)
	var projectErr *errors.Error
	if stderrors.As(err, &projectErr) && projectErr.Kind == errors.KindEnvironment {
		out.Hint("run 'suiterun config init' to create %s, or pass --dir", config.DefaultFileName)
	}
	return errors.GetExitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	run := &runOptions{}
	root := &cobra.Command{
		Use:   "suiterun",
		Short: "Run embedded test suites and summarize the results",
		Long: "suiterun runs each configured test suite through the external test runner, " +
			"one at a time, and prints a summary table with an overall verdict. " +
			"Without a subcommand it behaves like 'suiterun run'.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.out.SetQuiet(a.opts.Quiet)
			if a.opts.NoColor {
				a.out.SetColor(false)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSuites(cmd.Context(), run)
		},
	}
	root.SetVersionTemplate("suiterun {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.ConfigFile, flagConfig, "c", "", "configuration file (default <root>/.suiterun.yaml)")
	flags.StringVarP(&a.opts.Dir, flagDir, "C", "", "project root (default: nearest directory with .suiterun.yaml or platformio.ini)")
	flags.StringVar(&a.opts.LogLevel, flagLogLevel, "", "diagnostic log level: debug, info, warn, error")
	flags.StringVar(&a.opts.LogFormat, flagLogFormat, "", "diagnostic log format: console, structured")
	flags.BoolVarP(&a.opts.Quiet, flagQuiet, "q", false, "suppress progress output")
	flags.BoolVar(&a.opts.NoColor, flagNoColor, false, "disable colored output")

	bindRunFlags(root.Flags(), run)

	root.AddCommand(
		a.runCommand(),
		a.listCommand(),
		a.parseCommand(),
		a.buildCommand(),
		a.coverageCommand(),
		a.analyzeCommand(),
		a.checkCommand(),
		a.docsCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.out.Println("suiterun %s", Version)
		},
	}
}

// loadProject locates the project root and loads its configuration.
// Configuration warnings are printed to stderr.
func (a *app) loadProject() (*project.Project, error) {
	var p *project.Project
	var err error
	if a.opts.Dir == "" && a.opts.ConfigFile == "" {
		p, err = project.LoadProject()
	} else {
		var root string
		if root, err = a.projectRoot(); err != nil {
			return nil, err
		}
		p, err = project.LoadProjectFrom(root, a.opts.ConfigFile)
	}
	if err != nil {
		return nil, projectError(err)
	}

	for _, w := range p.Warnings {
		a.out.Warning("%s", w)
	}
	return p, nil
}

// projectError classifies a project loading failure for exit-code mapping.
func projectError(err error) error {
	var ve *config.ValidationError
	switch {
	case stderrors.Is(err, project.ErrNoProjectRoot):
		return errors.Environment(err.Error())
	case stderrors.As(err, &ve):
		return errors.Validation(ve)
	default:
		return errors.ConfigWrap(err, "invalid project configuration")
	}
}

// projectRoot resolves the root from --dir, or from the directory of --config.
func (a *app) projectRoot() (string, error) {
	if a.opts.Dir != "" {
		info, err := os.Stat(a.opts.Dir)
		if err != nil || !info.IsDir() {
			return "", errors.Environmentf("project directory %s does not exist", a.opts.Dir)
		}
		return filepath.Abs(a.opts.Dir)
	}
	return filepath.Abs(filepath.Dir(a.opts.ConfigFile))
}

// logger builds the diagnostic logger; flags override the configuration.
func (a *app) logger(level, format string) (*zap.Logger, error) {
	if a.opts.LogLevel != "" {
		level = a.opts.LogLevel
	}
	if a.opts.LogFormat != "" {
		format = a.opts.LogFormat
	}
	l, err := logging.New(logging.LogLevel(level), logging.LogFormat(format), a.out.Err())
	if err != nil {
		return nil, errors.ConfigWrap(err, "invalid logging options")
	}
	return l.With(zap.String(logging.FieldRunID, a.runID)), nil
}
