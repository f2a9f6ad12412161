package generation

import (
	"context"

	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/store"
)

// Pipeline runs resolve, build and install in order.
type Pipeline struct {
	Resolver  *Resolver
	Builder   *Builder
	Installer *Installer
}

// Build resolves the attribute for this host in flakeURI and builds it.
func (p *Pipeline) Build(ctx context.Context, flakeURI string) (store.Path, error) {
	logging.UserInfo("Resolving flake attribute in %s...", flakeURI)
	attr, err := p.Resolver.Resolve(ctx, flakeURI)
	if err != nil {
		return store.Path{}, err
	}

	logging.UserInfo("Building new generation...")
	sp, err := p.Builder.Build(ctx, flakeURI, attr)
	if err != nil {
		return store.Path{}, err
	}

	logging.UserSuccess("Built generation %s", sp)
	return sp, nil
}

// Switch builds flakeURI and installs the result. Nothing is installed
// unless the build produced exactly one store path.
func (p *Pipeline) Switch(ctx context.Context, flakeURI string) (store.Path, error) {
	sp, err := p.Build(ctx, flakeURI)
	if err != nil {
		return store.Path{}, err
	}

	if err := p.Installer.Install(ctx, sp); err != nil {
		return sp, err
	}
	return sp, nil
}
