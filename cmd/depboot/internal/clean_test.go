package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunClean(t *testing.T) {
	workRoot := filepath.Join(t.TempDir(), "work")
	stale := filepath.Join(workRoot, "pyHealpix-123456")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEPBOOT_WORK_ROOT", workRoot)

	if err := runClean(cleanCmd, nil); err != nil {
		t.Fatalf("runClean: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale work tree still present: %v", err)
	}
}

func TestRunCleanMissingRoot(t *testing.T) {
	t.Setenv("DEPBOOT_WORK_ROOT", filepath.Join(t.TempDir(), "never-created"))

	if err := runClean(cleanCmd, nil); err != nil {
		t.Fatalf("runClean on missing root: %v", err)
	}
}
