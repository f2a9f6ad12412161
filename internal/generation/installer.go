package generation

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/nix"
	"github.com/firefly-engineering/genctl/internal/store"
	"github.com/firefly-engineering/genctl/internal/system"
)

// Installer makes a store path the active generation and protects it
// from garbage collection. It assumes no other installer runs against
// the same profile concurrently.
type Installer struct {
	Profiles nix.ProfileManager
	FS       system.FileSystem

	// ProfileDir contains the profile; it is created when missing.
	ProfileDir string

	// ProfileName is the generation pointer inside ProfileDir.
	ProfileName string

	// GCRootPath is the link registered as a GC root.
	GCRootPath string
}

// ProfilePath returns the path of the generation pointer.
func (i *Installer) ProfilePath() string {
	return filepath.Join(i.ProfileDir, i.ProfileName)
}

// Install switches the profile to p and then registers the GC root.
// A failed switch leaves the GC root untouched. A failed registration
// leaves the new generation active but unprotected.
func (i *Installer) Install(ctx context.Context, p store.Path) error {
	logging.UserInfo("Creating new generation from %s", p)
	if err := i.SwitchProfile(ctx, p); err != nil {
		return err
	}

	logging.UserInfo("Registering GC root...")
	if _, err := i.RegisterGCRoot(); err != nil {
		logging.Warn("generation active but not protected from GC", "storePath", p.String(), "error", err)
		return err
	}

	logging.UserSuccess("Done")
	return nil
}

// SwitchProfile points the profile at p with nix-env --set.
func (i *Installer) SwitchProfile(ctx context.Context, p store.Path) error {
	if err := i.FS.MkdirAll(i.ProfileDir, 0755); err != nil {
		return errors.InstallFailed(fmt.Sprintf("failed to create profile directory %s", i.ProfileDir), err)
	}

	if err := i.Profiles.SetProfile(ctx, i.ProfilePath(), p); err != nil {
		return errors.InstallFailed(fmt.Sprintf("failed to set profile %s to %s", i.ProfilePath(), p), err)
	}

	logging.Debug("switched profile", "profile", i.ProfilePath(), "storePath", p.String())
	return nil
}

// RegisterGCRoot links the GC root to whatever the profile currently
// resolves to and returns that store path.
func (i *Installer) RegisterGCRoot() (store.Path, error) {
	current, err := store.Resolve(i.FS, i.ProfilePath())
	if err != nil {
		return store.Path{}, errors.GCRootFailed(err)
	}

	if err := store.Link(i.FS, current, i.GCRootPath); err != nil {
		return store.Path{}, errors.GCRootFailed(err)
	}

	logging.Debug("registered GC root", "gcroot", i.GCRootPath, "storePath", current.String())
	return current, nil
}

// State classifies the relation between the active profile and the GC root.
type State string

const (
	// StateNoProfile means no generation has been installed.
	StateNoProfile State = "no-profile"

	// StateProtected means the GC root points at the active generation.
	StateProtected State = "protected"

	// StateUnprotected means a generation is active but no GC root exists.
	StateUnprotected State = "unprotected"

	// StateStale means the GC root protects a different generation than the active one.
	StateStale State = "stale"
)

// Status describes the installed generation.
type Status struct {
	ProfilePath string     `json:"profilePath"`
	GCRootPath  string     `json:"gcrootPath"`
	Profile     store.Path `json:"profile"`
	GCRoot      store.Path `json:"gcroot"`
	State       State      `json:"state"`
}

// Protected reports whether the active generation is covered by the GC root.
func (s *Status) Protected() bool {
	return s.State == StateProtected
}

// Status reads the profile and GC root. Missing links are reported as
// empty store paths.
func (i *Installer) Status() (*Status, error) {
	profile, err := i.resolveOptional(i.ProfilePath())
	if err != nil {
		return nil, err
	}
	gcroot, err := i.resolveOptional(i.GCRootPath)
	if err != nil {
		return nil, err
	}

	st := &Status{
		ProfilePath: i.ProfilePath(),
		GCRootPath:  i.GCRootPath,
		Profile:     profile,
		GCRoot:      gcroot,
	}

	switch {
	case profile.IsZero():
		st.State = StateNoProfile
	case gcroot.IsZero():
		st.State = StateUnprotected
	case gcroot != profile:
		st.State = StateStale
	default:
		st.State = StateProtected
	}
	return st, nil
}

func (i *Installer) resolveOptional(link string) (store.Path, error) {
	p, err := store.Resolve(i.FS, link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.Path{}, nil
		}
		return store.Path{}, err
	}
	return p, nil
}
