package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *GenError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGenError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *GenError
		wantCode int
		wantMsg  string
	}{
		{"target not found", TargetNotFound("github:me/cfg"), ExitTargetNotFound, "no suitable flake attribute found in github:me/cfg"},
		{"build failed", BuildFailed("error: attribute missing\n"), ExitBuildFailed, "nix build failed: error: attribute missing"},
		{"build failed empty stderr", BuildFailed(""), ExitBuildFailed, "nix build failed"},
		{"malformed output", MalformedOutput(cause), ExitMalformedOutput, "error reading build output: boom"},
		{"ambiguous output", AmbiguousOutput(2), ExitAmbiguousOutput, "multiple build results"},
		{"missing output", MissingOutput("out"), ExitMissingOutput, "no output 'out' found"},
		{"no build results", NoBuildResults(), ExitMissingOutput, "no build results"},
		{"install failed", InstallFailed("nix-env --set failed", cause), ExitInstallFailed, "nix-env --set failed: boom"},
		{"gcroot failed", GCRootFailed(cause), ExitGCRootFailed, "unprotected"},
		{"config error", ConfigError("bad config", cause), ExitConfigError, "bad config: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestBuildFailed_KeepsStderrVerbatim(t *testing.T) {
	stderr := "error: builder for '/nix/store/abc.drv' failed with exit code 1;\n       last 10 log lines:\n       > oops"
	err := BuildFailed(stderr)

	if !strings.HasSuffix(err.Error(), stderr) {
		t.Errorf("Error() = %q, want stderr carried verbatim", err.Error())
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "GenError",
			err:      TargetNotFound("."),
			wantCode: ExitTargetNotFound,
		},
		{
			name:     "wrapped GenError",
			err:      fmt.Errorf("outer: %w", AmbiguousOutput(3)),
			wantCode: ExitAmbiguousOutput,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("switch: %w", GCRootFailed(fmt.Errorf("permission denied")))

	if !HasCode(err, ExitGCRootFailed) {
		t.Error("HasCode should find the GC root code through wrapping")
	}
	if HasCode(err, ExitInstallFailed) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(fmt.Errorf("plain"), ExitGeneralError) {
		t.Error("HasCode should be false for errors without a GenError")
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Wrap(ExitConfigError, "config error", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var genErr *GenError
	if !As(outer, &genErr) {
		t.Error("As should find GenError")
	}

	if genErr.Code != ExitConfigError {
		t.Errorf("Code = %d, want %d", genErr.Code, ExitConfigError)
	}

	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
}
