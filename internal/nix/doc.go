// Package nix wraps the nix command line tools genctl drives.
//
// The subprocess contracts are:
//
//	nix eval <uri>#<attr> --json              exit status only, output discarded
//	nix build <uri>#<attr> --json [args...]   stdout captured, stderr streamed and captured
//	nix-env --profile <path> --set <store>    stdout/stderr inherited
//
// Each contract sits behind a narrow interface (Evaluator, Builder,
// ProfileManager). CLI implements all three on top of a
// system.CommandExecutor; Fake implements them in memory on top of a
// system.MockFS for tests.
package nix
