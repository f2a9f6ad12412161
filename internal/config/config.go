package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/genctl/internal/system"
)

const (
	DefaultConfigPath  = "/etc/genctl/config.toml"
	DefaultFlakeAttr   = "systemConfigs"
	DefaultProfileDir  = "/nix/var/nix/profiles/system-manager-profiles"
	DefaultProfileName = "system-manager"
	DefaultGCRootPath  = "/nix/var/nix/gcroots/system-manager-current"
	DefaultNix         = "nix"
	DefaultNixEnv      = "nix-env"
)

// Config holds the locations and binaries genctl operates on.
type Config struct {
	FlakeAttr      string `toml:"flake_attr"`
	ProfileDir     string `toml:"profile_dir"`
	ProfileName    string `toml:"profile_name"`
	GCRootPath     string `toml:"gcroot_path"`
	Nix            string `toml:"nix"`
	NixEnv         string `toml:"nix_env"`
	ExtraBuildArgs string `toml:"extra_build_args"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FlakeAttr:   DefaultFlakeAttr,
		ProfileDir:  DefaultProfileDir,
		ProfileName: DefaultProfileName,
		GCRootPath:  DefaultGCRootPath,
		Nix:         DefaultNix,
		NixEnv:      DefaultNixEnv,
	}
}

// ProfilePath returns the path of the generation pointer.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.ProfileDir, c.ProfileName)
}

// BuildArgs splits ExtraBuildArgs using shell quoting rules.
func (c *Config) BuildArgs() ([]string, error) {
	if strings.TrimSpace(c.ExtraBuildArgs) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(c.ExtraBuildArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid extra_build_args: %w", err)
	}
	return args, nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.FlakeAttr == "" {
		return fmt.Errorf("flake_attr is required")
	}
	if !filepath.IsAbs(c.ProfileDir) {
		return fmt.Errorf("profile_dir must be an absolute path (got %q)", c.ProfileDir)
	}
	if err := validateProfileName(c.ProfileName); err != nil {
		return err
	}
	if !filepath.IsAbs(c.GCRootPath) {
		return fmt.Errorf("gcroot_path must be an absolute path (got %q)", c.GCRootPath)
	}
	if c.GCRootPath == c.ProfilePath() {
		return fmt.Errorf("gcroot_path must differ from the profile path")
	}
	if c.Nix == "" {
		return fmt.Errorf("nix is required")
	}
	if c.NixEnv == "" {
		return fmt.Errorf("nix_env is required")
	}
	if _, err := c.BuildArgs(); err != nil {
		return err
	}
	return nil
}

// validateProfileName rejects names that would place the profile
// outside profile_dir.
func validateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile_name is required")
	}
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("invalid profile_name %q: must be a single path element", name)
	}
	return nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration file at path. An empty path means
// DefaultConfigPath, which is allowed to be absent; an explicitly
// named file must exist.
func Load(fsys system.FileSystem, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
