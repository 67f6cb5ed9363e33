package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestList_Fixture(t *testing.T) {
	t.Parallel()

	root := filepath.Join("..", "..", "test", "fixtures", "full")
	docs, err := List(root, "docs", "*.md")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []Document{
		{Path: "docs/api.md", Title: "API"},
		{Path: "docs/getting-started.md", Title: "Getting started"},
	}
	if len(docs) != len(want) {
		t.Fatalf("List() = %+v, want %+v", docs, want)
	}
	for i := range want {
		if docs[i] != want[i] {
			t.Errorf("docs[%d] = %+v, want %+v", i, docs[i], want[i])
		}
	}
}

func TestList_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := List(t.TempDir(), "docs", "*.md")

	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("List() error = %v, want *MissingFileError", err)
	}
}

func TestList_SkipsSubdirectoriesAndUntitled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs", "nested.md"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "plain.md"), []byte("no heading\n## sub\n"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := List(root, "docs", "*.md")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Path != "docs/plain.md" || docs[0].Title != "" {
		t.Errorf("List() = %+v", docs)
	}
}

func TestList_InvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := List(t.TempDir(), "docs", "["); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
