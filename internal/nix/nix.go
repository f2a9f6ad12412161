package nix

import (
	"context"
	"fmt"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/store"
	"github.com/firefly-engineering/genctl/internal/system"
)

// Evaluator probes whether a flake attribute evaluates.
type Evaluator interface {
	// Eval reports whether installable evaluates successfully. A nonzero
	// exit means the attribute is absent; err is only set when the
	// evaluator could not be run at all.
	Eval(ctx context.Context, installable string) (bool, error)
}

// Builder builds a flake attribute.
type Builder interface {
	// Build runs the build and returns what it printed. A nonzero exit is
	// reported through BuildOutput.ExitCode, not err.
	Build(ctx context.Context, installable string) (*BuildOutput, error)
}

// ProfileManager points a profile at a store path.
type ProfileManager interface {
	// SetProfile atomically switches the profile at profilePath to target.
	SetProfile(ctx context.Context, profilePath string, target store.Path) error
}

// BuildOutput holds the captured streams of a build.
type BuildOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the build exited with status zero.
func (o *BuildOutput) Success() bool {
	return o.ExitCode == 0
}

// Installable joins a flake reference and an attribute path.
func Installable(flakeURI, attr string) string {
	return flakeURI + "#" + attr
}

// CLI implements Evaluator, Builder and ProfileManager by running the nix
// and nix-env binaries.
type CLI struct {
	// Nix is the nix binary used for eval and build.
	Nix string

	// NixEnv is the nix-env binary used for profile updates.
	NixEnv string

	// BuildArgs are appended to every nix build invocation.
	BuildArgs []string

	Executor system.CommandExecutor
}

// NewCLI creates a CLI running the given binaries through exec.
func NewCLI(nixBin, nixEnvBin string, buildArgs []string, exec system.CommandExecutor) *CLI {
	return &CLI{
		Nix:       nixBin,
		NixEnv:    nixEnvBin,
		BuildArgs: buildArgs,
		Executor:  exec,
	}
}

func (c *CLI) Eval(ctx context.Context, installable string) (bool, error) {
	args := []string{"eval", installable, "--json"}
	logging.Debug("running command", "cmd", shellquote.Join(append([]string{c.Nix}, args...)...))

	err := c.Executor.RunQuiet(ctx, c.Nix, args...)
	if err == nil {
		return true, nil
	}
	if code, ok := system.ExitCode(err); ok {
		logging.Debug("evaluation failed", "installable", installable, "code", code)
		return false, nil
	}
	return false, fmt.Errorf("failed to run %s eval: %w", c.Nix, err)
}

func (c *CLI) Build(ctx context.Context, installable string) (*BuildOutput, error) {
	args := append([]string{"build", installable, "--json"}, c.BuildArgs...)
	logging.Debug("running command", "cmd", shellquote.Join(append([]string{c.Nix}, args...)...))

	stdout, stderr, err := c.Executor.Capture(ctx, c.Nix, args...)
	out := &BuildOutput{Stdout: stdout, Stderr: stderr}
	if err != nil {
		code, ok := system.ExitCode(err)
		if !ok {
			return nil, fmt.Errorf("failed to run %s build: %w", c.Nix, err)
		}
		out.ExitCode = code
	}
	return out, nil
}

func (c *CLI) SetProfile(ctx context.Context, profilePath string, target store.Path) error {
	args := []string{"--profile", profilePath, "--set", target.String()}
	logging.Debug("running command", "cmd", shellquote.Join(append([]string{c.NixEnv}, args...)...))

	return c.Executor.ExecuteInteractive(ctx, c.NixEnv, args...)
}

var (
	_ Evaluator      = (*CLI)(nil)
	_ Builder        = (*CLI)(nil)
	_ ProfileManager = (*CLI)(nil)
)
