package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/suiterun/internal/config"
)

// Project represents a loaded suiterun project.
type Project struct {
	Root string
	// ConfigFile is the configuration file that was read, or empty when the
	// project runs on defaults.
	ConfigFile string
	Config     *config.Config
	Warnings   []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root, "")
}

// LoadProjectFrom loads a project rooted at root. configFile overrides the
// default <root>/.suiterun.yaml; a missing default file means defaults are used,
// while a missing explicit file is an error.
func LoadProjectFrom(root, configFile string) (*Project, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	if configFile == "" {
		candidate := filepath.Join(root, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to access configuration: %w", err)
		}
	}

	cfg, warnings, err := config.LoadAndValidate(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:       root,
		ConfigFile: configFile,
		Config:     cfg,
		Warnings:   warnings,
	}, nil
}

// WorkingDirectory returns the directory suites run in: runner.working_directory
// resolved against the root, or the root itself.
func (p *Project) WorkingDirectory() string {
	dir := p.Config.Runner.WorkingDirectory
	if dir == "" {
		return p.Root
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

// Path resolves a project-relative path.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}
