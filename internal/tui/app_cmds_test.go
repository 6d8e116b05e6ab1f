package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveDownload_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "work")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	for _, hostile := range []string{"../escaped.txt", "/tmp/escaped.txt", `..\..\escaped.txt`} {
		if err := saveDownload(hostile, []byte("x")); err != nil {
			t.Fatalf("saveDownload(%q): %v", hostile, err)
		}
		if _, err := os.Stat("escaped.txt"); err != nil {
			t.Fatalf("expected %q to land in the working directory: %v", hostile, err)
		}
		if _, err := os.Stat(filepath.Join(dir, "escaped.txt")); err == nil {
			t.Fatalf("saveDownload(%q) escaped the working directory", hostile)
		}
		if err := os.Remove("escaped.txt"); err != nil {
			t.Fatal(err)
		}
	}

	for _, unusable := range []string{"", ".", "..", "/"} {
		if err := saveDownload(unusable, []byte("x")); err == nil {
			t.Fatalf("expected saveDownload(%q) to fail", unusable)
		}
	}
}
