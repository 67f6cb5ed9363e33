// Package docs lists the documentation files of a project.
package docs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one documentation file.
type Document struct {
	// Path is relative to the project root, slash-separated.
	Path string
	// Title is the first Markdown heading, or empty.
	Title string
}

// MissingFileError indicates a required file or directory is missing.
type MissingFileError struct {
	Path    string
	Message string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

// List returns the files in root/dir matching pattern, sorted by path.
// Subdirectories are not searched.
func List(root, dir, pattern string) ([]Document, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid docs pattern %q: %w", pattern, err)
	}

	absDir := filepath.Join(root, dir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: absDir, Message: "documentation directory not found"}
		}
		return nil, fmt.Errorf("failed to read documentation directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		docs = append(docs, Document{
			Path:  filepath.ToSlash(filepath.Join(dir, entry.Name())),
			Title: readTitle(filepath.Join(absDir, entry.Name())),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// readTitle returns the text of the first "# " heading. Unreadable files have
// no title.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}
