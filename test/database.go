package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path for a throwaway sqlite database. Every call
// yields a fresh directory, so parallel connections never collide.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "budget.db")
}
