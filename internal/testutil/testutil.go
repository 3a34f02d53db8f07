// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/menagerie/internal/logging"
)

// RunWithLogging points the error log at a temporary directory for the
// duration of the package's tests and returns their exit code.
func RunWithLogging(m *testing.M, name string) int {
	dir, err := os.MkdirTemp("", name)
	if err != nil {
		return m.Run()
	}
	defer os.RemoveAll(dir)
	logging.Configure(filepath.Join(dir, "test.log"))
	return m.Run()
}

// RepoRoot walks up from the working directory to the directory holding
// go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
