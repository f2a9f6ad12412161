// Package generation builds a system generation from a flake and makes it
// the active, GC-protected generation.
//
// The flow is:
//
//	Resolver   picks <base>.<hostname> or <base>.default by probing with nix eval
//	Builder    runs nix build --json on the chosen attribute
//	ParseBuildOutput turns the JSON result into exactly one store path
//	Installer  switches the profile with nix-env --set, then links the GC root
//
// Pipeline wires the steps together. Every step must succeed before the
// next one starts.
//
// # Risk window
//
// Switching the profile and registering the GC root are two separate
// steps. If the second fails, the new generation is active but not
// protected from garbage collection. This is not rolled back; it is
// reported as a GC root error and can be observed with Installer.Status
// and repaired with Installer.RegisterGCRoot.
package generation
