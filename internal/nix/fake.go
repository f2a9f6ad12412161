package nix

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/firefly-engineering/genctl/internal/store"
	"github.com/firefly-engineering/genctl/internal/system"
)

// Fake implements Evaluator, Builder and ProfileManager in memory.
// Profile switches are applied to FS the way nix-env lays them out:
// a numbered generation link plus the profile link pointing at it.
type Fake struct {
	mu sync.Mutex

	// FS receives store paths and profile links.
	FS *system.MockFS

	// Attrs lists installables that evaluate successfully.
	Attrs map[string]bool

	// Results maps installables to build outputs. Unknown installables
	// fail to build with exit code 1.
	Results map[string]*BuildOutput

	// EvalErr, BuildErr and SetProfileErr simulate tools that cannot be started.
	EvalErr       error
	BuildErr      error
	SetProfileErr error

	// SetProfileExitCode makes SetProfile report a nonzero nix-env exit.
	SetProfileExitCode int

	// Recorded calls
	Evals       []string
	Builds      []string
	ProfileSets []ProfileSet

	generation int
}

// ProfileSet records a SetProfile call.
type ProfileSet struct {
	Profile string
	Target  store.Path
}

// NewFake creates a Fake backed by fsys.
func NewFake(fsys *system.MockFS) *Fake {
	return &Fake{
		FS:      fsys,
		Attrs:   make(map[string]bool),
		Results: make(map[string]*BuildOutput),
	}
}

// AddAttr marks installable as evaluating successfully.
func (f *Fake) AddAttr(installable string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Attrs[installable] = true
}

// AddBuild registers a successful build of installable printing stdout.
// The given store paths are created in FS as if the build realised them.
func (f *Fake) AddBuild(installable, stdout string, realised ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results[installable] = &BuildOutput{Stdout: []byte(stdout)}
	for _, p := range realised {
		f.FS.AddDir(p)
	}
}

func (f *Fake) Eval(ctx context.Context, installable string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Evals = append(f.Evals, installable)
	if f.EvalErr != nil {
		return false, f.EvalErr
	}
	return f.Attrs[installable], nil
}

func (f *Fake) Build(ctx context.Context, installable string) (*BuildOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Builds = append(f.Builds, installable)
	if f.BuildErr != nil {
		return nil, f.BuildErr
	}
	if out, ok := f.Results[installable]; ok {
		return out, nil
	}
	return &BuildOutput{
		Stderr:   []byte(fmt.Sprintf("error: flake does not provide attribute '%s'\n", installable)),
		ExitCode: 1,
	}, nil
}

func (f *Fake) SetProfile(ctx context.Context, profilePath string, target store.Path) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProfileSets = append(f.ProfileSets, ProfileSet{Profile: profilePath, Target: target})

	if f.SetProfileErr != nil {
		return f.SetProfileErr
	}
	if f.SetProfileExitCode != 0 {
		return &system.ExitError{Name: "nix-env", Code: f.SetProfileExitCode}
	}
	if !f.FS.Exists(target.String()) {
		return &system.ExitError{Name: "nix-env", Code: 1}
	}

	f.generation++
	genName := fmt.Sprintf("%s-%d-link", filepath.Base(profilePath), f.generation)
	genPath := filepath.Join(filepath.Dir(profilePath), genName)
	if err := f.FS.Symlink(target.String(), genPath); err != nil {
		return err
	}
	tmp := profilePath + ".tmp"
	if err := f.FS.Symlink(genName, tmp); err != nil {
		return err
	}
	return f.FS.Rename(tmp, profilePath)
}

var (
	_ Evaluator      = (*Fake)(nil)
	_ Builder        = (*Fake)(nil)
	_ ProfileManager = (*Fake)(nil)
)
