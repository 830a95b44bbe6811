package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SealDir creates a seal directory with the given photo filenames inside a
// temporary workspace and returns its path. The files hold a single marker
// byte; only their names matter to the scanner.
func SealDir(t *testing.T, folderName string, filenames ...string) string {
	t.Helper()

	sealPath := filepath.Join(t.TempDir(), folderName)
	if err := os.Mkdir(sealPath, 0755); err != nil {
		t.Fatalf("creating seal dir: %v", err)
	}
	for _, name := range filenames {
		WriteFile(t, filepath.Join(sealPath, name))
	}
	return sealPath
}

// WriteFile creates a one-byte file at path.
func WriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{0xFF}, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
