package evidence

import (
	"io"
	"io/fs"
)

// FilesystemManager abstracts the filesystem operations the evidence core
// needs, so indexing and hierarchy management can be tested without touching
// real directories and so all failures carry the attempted path.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// ListImages returns the absolute paths of all *.jpg files (extension
	// matched case-insensitively) directly inside dir, non-recursive.
	ListImages(dir string) ([]string, error)

	// ListDirs returns the names of the immediate subdirectories of dir,
	// sorted case-insensitively.
	ListDirs(dir string) ([]string, error)

	// MkDir creates a single directory. It fails with fs.ErrExist if the
	// path already exists.
	MkDir(dir string) error

	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)

	// Stat returns file info for a path.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile reads an entire file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte) error
}

// Path represents a validated filesystem path with cached metadata.
// Path objects are created by FilesystemManager.Resolve() which validates
// the path exists, resolves it to an absolute path, and caches stat info.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{
		absPath: absPath,
		isDir:   isDir,
		info:    info,
	}
}

// String returns the absolute path as a string.
func (p *Path) String() string {
	return p.absPath
}

// IsDir returns true if this path points to a directory.
func (p *Path) IsDir() bool {
	return p.isDir
}

// Info returns the cached file info from when the path was resolved.
func (p *Path) Info() fs.FileInfo {
	return p.info
}
