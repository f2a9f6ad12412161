// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FileSystem abstracts the file system operations used to manage profiles
// and GC roots.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Lstat returns file info for the named file without following symlinks.
	Lstat(path string) (fs.FileInfo, error)

	// Exists returns true if the path exists (following symlinks).
	Exists(path string) bool

	// Readlink returns the destination of the named symbolic link.
	Readlink(path string) (string, error)

	// EvalSymlinks returns the path name after evaluating every symbolic link.
	EvalSymlinks(path string) (string, error)

	// Symlink creates newname as a symbolic link to oldname.
	Symlink(oldname, newname string) error

	// Rename renames oldpath to newpath, replacing newpath atomically.
	Rename(oldpath, newpath string) error

	// Remove removes the named file, link or empty directory.
	Remove(path string) error
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// RunQuiet runs a command with stdout and stderr discarded.
	// A nonzero exit is reported as *ExitError.
	RunQuiet(ctx context.Context, name string, args ...string) error

	// Capture runs a command and captures its stdout. stderr is streamed to
	// the terminal unmodified and captured as well. A nonzero exit is
	// reported as *ExitError alongside whatever was captured.
	Capture(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

	// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
	ExecuteInteractive(ctx context.Context, name string, args ...string) error
}

// ExitError reports a command that ran but exited with a nonzero status.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// ExitCode returns the exit status carried by err, if any.
// The second result is false when err is not an exit failure
// (for example when the binary could not be started).
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// Default instances using real OS operations.
var (
	defaultFS       FileSystem      = &osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultExecutor = &osExecutor{}
}
