package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		jsonOutput bool
		log        func()
		want       []string
		notWant    []string
	}{
		{
			name: "text info",
			log:  func() { Info("resolving target", "flake", ".") },
			want: []string{"resolving target", "flake=."},
		},
		{
			name:       "json info",
			jsonOutput: true,
			log:        func() { Info("resolving target", "flake", ".") },
			want:       []string{"{", `"msg":"resolving target"`, `"flake":"."`},
		},
		{
			name:    "debug hidden without verbose",
			log:     func() { Debug("running command") },
			notWant: []string{"running command"},
		},
		{
			name:    "debug shown when verbose",
			verbose: true,
			log:     func() { Debug("running command", "cmd", "nix build") },
			want:    []string{"running command"},
		},
		{
			name: "warn",
			log:  func() { Warn("profile and GC root diverge") },
			want: []string{"level=WARN", "profile and GC root diverge"},
		},
		{
			name: "error",
			log:  func() { Error("nix-env failed", "code", 1) },
			want: []string{"level=ERROR", "nix-env failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.verbose, tt.jsonOutput, &buf)
			tt.log()

			output := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(output, w) {
					t.Errorf("expected %q in output, got: %s", w, output)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(output, w) {
					t.Errorf("did not expect %q in output, got: %s", w, output)
				}
			}
			if Verbose != tt.verbose {
				t.Errorf("Verbose = %v, want %v", Verbose, tt.verbose)
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("phase", "gcroot")
	if logger == nil {
		t.Fatal("With() returned nil")
	}

	logger.Info("registering")

	output := buf.String()
	if !strings.Contains(output, "phase=gcroot") {
		t.Errorf("Expected 'phase=gcroot' in output, got: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	SetUserOutput(&out, &errOut)
	defer SetUserOutput(nil, nil)

	if o, e := UserOutput(); o != &out || e != &errOut {
		t.Fatal("UserOutput should return the writers passed to SetUserOutput")
	}

	UserInfo("Trying flake attribute: %s...", ".#systemConfigs.default")
	UserSuccess("Done")
	UserWarning("generation %s is unprotected", "/nix/store/xyz-system")
	UserError("build failed")

	stdout := out.String()
	for _, want := range []string{"ℹ", "Trying flake attribute: .#systemConfigs.default...", "✓", "Done"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q: %s", want, stdout)
		}
	}

	stderr := errOut.String()
	for _, want := range []string{"⚠", "/nix/store/xyz-system is unprotected", "✗", "build failed"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q: %s", want, stderr)
		}
	}

	if strings.Contains(stdout, "build failed") {
		t.Error("errors should not be written to stdout")
	}
}
