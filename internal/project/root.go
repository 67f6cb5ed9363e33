// Package project locates a suiterun project and loads its configuration.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/suiterun/internal/config"
)

// PlatformIOFileName marks a PlatformIO project directory.
const PlatformIOFileName = "platformio.ini"

// rootMarkers are checked in order in every directory while walking up.
var rootMarkers = []string{config.DefaultFileName, PlatformIOFileName}

// ErrNoProjectRoot is returned when no marker file is found.
var ErrNoProjectRoot = errors.New(config.DefaultFileName + " or " + PlatformIOFileName + " not found: not a suiterun project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds a
// project marker.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds a directory
// containing .suiterun.yaml or platformio.ini.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
