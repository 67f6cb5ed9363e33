package build

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/suiterun/internal/executor"
)

// Step is a single auxiliary command run from the project root, such as
// coverage collection or static analysis.
type Step struct {
	Name    string
	Command []string
	// Optional steps whose executable cannot be launched are reported as
	// skipped rather than failed.
	Optional bool
}

// StepCommand renders the command for step.
func (b *Builder) StepCommand(step Step) executor.Command {
	cmd := executor.Command{Dir: b.dir, Timeout: b.timeout}
	if len(step.Command) > 0 {
		cmd.Name = step.Command[0]
		cmd.Args = append([]string(nil), step.Command[1:]...)
	}
	return cmd
}

// RunStep runs step once. The result's Platform field holds the step name.
// obs may be nil.
func (b *Builder) RunStep(ctx context.Context, step Step, obs Observer) PlatformResult {
	cmd := b.StepCommand(step)
	if obs != nil {
		obs.BuildStarted(step.Name, cmd)
	}

	result := b.build(ctx, step.Name, cmd)
	if result.Status == StatusLaunchFailed && step.Optional {
		result.Status = StatusSkipped
	}

	if obs != nil {
		obs.BuildFinished(result)
	}
	return result
}

// CoverageFiles returns the gcov reports under root, relative and sorted.
// Hidden directories are not searched.
func CoverageFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".gcov" {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
