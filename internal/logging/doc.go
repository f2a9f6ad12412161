// Package logging provides logging utilities for genctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted progress messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("running command", "cmd", "nix eval .#systemConfigs.default --json")
//	logging.Warn("profile and GC root diverge", "profile", p, "gcroot", g)
//
// # User Output
//
// User-facing messages are prefixed with a status indicator, colored with
// lipgloss when the terminal supports it:
//
//	logging.UserInfo("Trying flake attribute: %s...", installable)
//	logging.UserSuccess("Switched profile to %s", storePath)
//	logging.UserWarning("Generation %s is not protected from GC", storePath)
//	logging.UserError("Build failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// Every pipeline phase (resolving target, building, switching profile,
// registering GC root) announces itself through UserInfo, so the phase of a
// failure is evident from the preceding output.
package logging
