package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for genctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitTargetNotFound  = 2
	ExitBuildFailed     = 3
	ExitMalformedOutput = 4
	ExitAmbiguousOutput = 5
	ExitMissingOutput   = 6
	ExitInstallFailed   = 7
	ExitGCRootFailed    = 8
	ExitConfigError     = 9
)

// GenError is the base error type for genctl
type GenError struct {
	Code    int
	Message string
	Cause   error
}

func (e *GenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GenError) ExitCode() int {
	return e.Code
}

// New creates a new GenError
func New(code int, message string) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GenError
func Wrap(code int, message string, cause error) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TargetNotFound returns an error when no candidate attribute evaluates.
func TargetNotFound(flakeURI string) *GenError {
	return New(ExitTargetNotFound, fmt.Sprintf("no suitable flake attribute found in %s, giving up", flakeURI))
}

// BuildFailed returns an error for a nonzero nix build exit.
// The builder's diagnostic output is carried verbatim.
func BuildFailed(stderr string) *GenError {
	msg := strings.TrimRight(stderr, "\n")
	if msg == "" {
		return New(ExitBuildFailed, "nix build failed")
	}
	return New(ExitBuildFailed, "nix build failed: "+msg)
}

// MalformedOutput returns an error for a build result that cannot be decoded.
func MalformedOutput(cause error) *GenError {
	return Wrap(ExitMalformedOutput, "error reading build output", cause)
}

// AmbiguousOutput returns an error when the builder returned more than one result.
func AmbiguousOutput(count int) *GenError {
	return New(ExitAmbiguousOutput, fmt.Sprintf("multiple build results were returned (%d), cannot handle that yet", count))
}

// MissingOutput returns an error when the build result lacks the named output.
func MissingOutput(name string) *GenError {
	return New(ExitMissingOutput, fmt.Sprintf("no output '%s' found in build result", name))
}

// NoBuildResults returns an error when the builder returned an empty result list.
func NoBuildResults() *GenError {
	return New(ExitMissingOutput, "no build results were returned")
}

// InstallFailed returns an error for a failed profile switch
func InstallFailed(message string, cause error) *GenError {
	return Wrap(ExitInstallFailed, message, cause)
}

// GCRootFailed returns an error for a failed GC root registration.
// The new generation is active at this point but not protected.
func GCRootFailed(cause error) *GenError {
	return Wrap(ExitGCRootFailed, "profile switched but GC root registration failed, generation is unprotected", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *GenError {
	return Wrap(ExitConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether err carries a GenError with the given exit code.
func HasCode(err error, code int) bool {
	var genErr *GenError
	return errors.As(err, &genErr) && genErr.Code == code
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
