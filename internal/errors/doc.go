// Package errors provides typed errors with exit codes for genctl.
//
// # Error Types
//
// GenError is the base error type that wraps an error with an exit code:
//
//	type GenError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Each failure kind of the build and activation pipeline has its own code:
//
//	ExitSuccess          = 0  // Success
//	ExitGeneralError     = 1  // General/unknown errors
//	ExitTargetNotFound   = 2  // Neither host nor default attribute evaluates
//	ExitBuildFailed      = 3  // nix build exited nonzero
//	ExitMalformedOutput  = 4  // Build result could not be decoded
//	ExitAmbiguousOutput  = 5  // More than one build result
//	ExitMissingOutput    = 6  // No "out" output (or no result at all)
//	ExitInstallFailed    = 7  // Profile directory or nix-env --set failed
//	ExitGCRootFailed     = 8  // Profile switched but GC root not registered
//	ExitConfigError      = 9  // Configuration error
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
