package generation

import (
	"context"
	"strings"

	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/nix"
	"github.com/firefly-engineering/genctl/internal/store"
)

// Builder runs the real build of a resolved attribute.
type Builder struct {
	Nix nix.Builder
}

// NewBuilder creates a Builder.
func NewBuilder(b nix.Builder) *Builder {
	return &Builder{Nix: b}
}

// Build builds flakeURI#attr and returns the store path of its "out" output.
func (b *Builder) Build(ctx context.Context, flakeURI, attr string) (store.Path, error) {
	installable := nix.Installable(flakeURI, attr)
	logging.UserInfo("Running nix build %s...", installable)

	out, err := b.Nix.Build(ctx, installable)
	if err != nil {
		return store.Path{}, err
	}

	if !out.Success() {
		stderr := strings.ToValidUTF8(string(out.Stderr), "\uFFFD")
		logging.Debug("nix build failed", "installable", installable, "code", out.ExitCode)
		return store.Path{}, errors.BuildFailed(stderr)
	}

	return ParseBuildOutput(out.Stdout)
}
