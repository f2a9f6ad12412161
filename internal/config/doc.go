// Package config provides configuration types and loading for genctl.
//
// Configuration is read from a TOML file, /etc/genctl/config.toml by
// default. Every key is optional; a missing default file means built-in
// defaults are used:
//
//	flake_attr       = "systemConfigs"
//	profile_dir      = "/nix/var/nix/profiles/system-manager-profiles"
//	profile_name     = "system-manager"
//	gcroot_path      = "/nix/var/nix/gcroots/system-manager-current"
//	nix              = "nix"
//	nix_env          = "nix-env"
//	extra_build_args = "--option substituters 'https://cache.nixos.org'"
//
// extra_build_args is split with shell quoting rules and appended to every
// nix build invocation.
package config
