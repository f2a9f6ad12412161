package app

import (
	"os"

	"github.com/firefly-engineering/genctl/internal/config"
	"github.com/firefly-engineering/genctl/internal/generation"
	"github.com/firefly-engineering/genctl/internal/nix"
	"github.com/firefly-engineering/genctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config holds locations and binaries
	Config *config.Config

	// Executor runs nix and nix-env
	Executor system.CommandExecutor

	// FS is used for profile and GC root links
	FS system.FileSystem

	// Hostname returns the local host name
	Hostname func() (string, error)

	// Nix overrides the nix CLI wrapper; nil means build one from Config and Executor
	Nix NixTool
}

// NixTool is everything the pipeline needs from nix.
type NixTool interface {
	nix.Evaluator
	nix.Builder
	nix.ProfileManager
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithHostname sets a custom hostname lookup
func WithHostname(fn func() (string, error)) Option {
	return func(a *App) {
		a.Hostname = fn
	}
}

// WithNix replaces the nix CLI wrapper
func WithNix(tool NixTool) Option {
	return func(a *App) {
		a.Nix = tool
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Config:   config.Default(),
		Executor: system.DefaultExecutor(),
		FS:       system.DefaultFS(),
		Hostname: os.Hostname,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// NixTool returns the nix wrapper used by the pipeline.
func (a *App) NixTool() (NixTool, error) {
	if a.Nix != nil {
		return a.Nix, nil
	}
	args, err := a.Config.BuildArgs()
	if err != nil {
		return nil, err
	}
	return nix.NewCLI(a.Config.Nix, a.Config.NixEnv, args, a.Executor), nil
}

// Installer builds the generation installer for the configured profile.
func (a *App) Installer() (*generation.Installer, error) {
	tool, err := a.NixTool()
	if err != nil {
		return nil, err
	}
	return a.installer(tool), nil
}

func (a *App) installer(tool NixTool) *generation.Installer {
	return &generation.Installer{
		Profiles:    tool,
		FS:          a.FS,
		ProfileDir:  a.Config.ProfileDir,
		ProfileName: a.Config.ProfileName,
		GCRootPath:  a.Config.GCRootPath,
	}
}

// Pipeline builds the resolve, build and install pipeline.
func (a *App) Pipeline() (*generation.Pipeline, error) {
	tool, err := a.NixTool()
	if err != nil {
		return nil, err
	}
	return &generation.Pipeline{
		Resolver:  generation.NewResolver(tool, a.Config.FlakeAttr, a.Hostname),
		Builder:   generation.NewBuilder(tool),
		Installer: a.installer(tool),
	}, nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
