// Package store models references to content-addressed store objects and
// the symlinks (profiles, GC roots) that point at them.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/system"
)

// Path is an immutable reference to a built store object, such as
// /nix/store/<hash>-system-manager. Two Paths are equal when their
// wrapped strings are equal.
type Path struct {
	path string
}

// New wraps s as a store path.
func New(s string) Path {
	return Path{path: s}
}

// String returns the wrapped path.
func (p Path) String() string {
	return p.path
}

// IsZero reports whether p wraps the empty string.
func (p Path) IsZero() bool {
	return p.path == ""
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.path), nil
}

// Resolve follows every symlink layer of link and returns the canonical
// store object it designates.
func Resolve(fsys system.FileSystem, link string) (Path, error) {
	resolved, err := fsys.EvalSymlinks(link)
	if err != nil {
		return Path{}, fmt.Errorf("failed to resolve %s: %w", link, err)
	}
	return New(resolved), nil
}

// Link creates or replaces the symlink at linkPath so that it points at p.
// The new link is created under a temporary sibling name and renamed over
// linkPath, so readers see either the old target or the new one.
func Link(fsys system.FileSystem, p Path, linkPath string) error {
	if p.IsZero() {
		return fmt.Errorf("refusing to link %s to an empty store path", linkPath)
	}

	dir := filepath.Dir(linkPath)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(linkPath)+".tmp-"+strconv.Itoa(os.Getpid()))
	if err := fsys.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear stale %s: %w", tmp, err)
	}

	if err := fsys.Symlink(p.String(), tmp); err != nil {
		return fmt.Errorf("failed to create link to %s: %w", p, err)
	}

	if err := fsys.Rename(tmp, linkPath); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("failed to move link into place at %s: %w", linkPath, err)
	}

	logging.Debug("linked store path", "link", linkPath, "target", p.String())
	return nil
}
