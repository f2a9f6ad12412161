package generation

import (
	"github.com/firefly-engineering/genctl/internal/nix"
	"github.com/firefly-engineering/genctl/internal/system"
)

const (
	testProfileDir = "/nix/var/nix/profiles/system-manager-profiles"
	testGCRoot     = "/nix/var/nix/gcroots/system-manager-current"
)

func staticHostname(name string) func() (string, error) {
	return func() (string, error) { return name, nil }
}

// newTestPipeline wires a pipeline over a fake nix and a mock file system,
// with the GC root directory already present as on a real system.
func newTestPipeline(baseAttr, host string) (*Pipeline, *nix.Fake, *system.MockFS) {
	fsys := system.NewMockFS()
	fsys.AddDir("/nix/var/nix/gcroots")
	fake := nix.NewFake(fsys)

	p := &Pipeline{
		Resolver: NewResolver(fake, baseAttr, staticHostname(host)),
		Builder:  NewBuilder(fake),
		Installer: &Installer{
			Profiles:    fake,
			FS:          fsys,
			ProfileDir:  testProfileDir,
			ProfileName: "system-manager",
			GCRootPath:  testGCRoot,
		},
	}
	return p, fake, fsys
}
