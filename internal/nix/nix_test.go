package nix

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/genctl/internal/store"
	"github.com/firefly-engineering/genctl/internal/system"
)

func TestInstallable(t *testing.T) {
	if got := Installable("github:me/hosts", "systemConfigs.web1"); got != "github:me/hosts#systemConfigs.web1" {
		t.Errorf("Installable = %q", got)
	}
}

func TestCLI_Eval(t *testing.T) {
	tests := []struct {
		name    string
		resp    system.MockResponse
		want    bool
		wantErr bool
	}{
		{"present", system.MockResponse{}, true, false},
		{"absent", system.MockResponse{Err: &system.ExitError{Name: "nix", Code: 1}}, false, false},
		{"absent other code", system.MockResponse{Err: &system.ExitError{Name: "nix", Code: 101}}, false, false},
		{"not startable", system.MockResponse{Err: errors.New(`exec: "nix": executable file not found in $PATH`)}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := system.NewMockExecutor()
			exec.DefaultResponse = tt.resp
			cli := NewCLI("nix", "nix-env", nil, exec)

			got, err := cli.Eval(context.Background(), ".#systemConfigs.default")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Eval error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}

			want := []string{"nix eval .#systemConfigs.default --json"}
			if diff := cmp.Diff(want, exec.Lines()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCLI_Build(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("/run/current-system/sw/bin/nix build", system.MockResponse{
		Stdout: []byte(`[{"drvPath":"/nix/store/abc.drv","outputs":{"out":"/nix/store/xyz-system"}}]`),
		Stderr: []byte("building '/nix/store/abc.drv'...\n"),
	})
	cli := NewCLI("/run/current-system/sw/bin/nix", "nix-env", []string{"-L", "--option", "cores", "4"}, exec)

	out, err := cli.Build(context.Background(), ".#systemConfigs.web1")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !out.Success() {
		t.Errorf("Success() = false, ExitCode = %d", out.ExitCode)
	}
	if string(out.Stderr) != "building '/nix/store/abc.drv'...\n" {
		t.Errorf("Stderr = %q", out.Stderr)
	}

	cmd, _ := exec.LastCommand()
	wantArgs := []string{"build", ".#systemConfigs.web1", "--json", "-L", "--option", "cores", "4"}
	if diff := cmp.Diff(wantArgs, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_BuildFailure(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.DefaultResponse = system.MockResponse{
		Stderr: []byte("error: attribute 'web1' missing\n"),
		Err:    &system.ExitError{Name: "nix", Code: 1},
	}
	cli := NewCLI("nix", "nix-env", nil, exec)

	out, err := cli.Build(context.Background(), ".#systemConfigs.web1")
	if err != nil {
		t.Fatalf("Build should report exit codes through BuildOutput, got %v", err)
	}
	if out.Success() || out.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", out.ExitCode)
	}
	if string(out.Stderr) != "error: attribute 'web1' missing\n" {
		t.Errorf("Stderr = %q", out.Stderr)
	}

	exec.DefaultResponse = system.MockResponse{Err: errors.New("permission denied")}
	if _, err := cli.Build(context.Background(), ".#x"); err == nil {
		t.Error("Build should fail when nix cannot be started")
	}
}

func TestCLI_SetProfile(t *testing.T) {
	exec := system.NewMockExecutor()
	cli := NewCLI("nix", "/bin/nix-env", nil, exec)

	err := cli.SetProfile(context.Background(), "/nix/var/nix/profiles/system-manager-profiles/system-manager", store.New("/nix/store/xyz-system"))
	if err != nil {
		t.Fatalf("SetProfile error: %v", err)
	}

	want := []string{"/bin/nix-env --profile /nix/var/nix/profiles/system-manager-profiles/system-manager --set /nix/store/xyz-system"}
	if diff := cmp.Diff(want, exec.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	exec.DefaultResponse = system.MockResponse{Err: &system.ExitError{Name: "nix-env", Code: 1}}
	err = cli.SetProfile(context.Background(), "/p", store.New("/nix/store/xyz-system"))
	if code, ok := system.ExitCode(err); !ok || code != 1 {
		t.Errorf("SetProfile error = %v, want exit code 1", err)
	}
}

func TestFake_SetProfileLaysOutGenerations(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddDir("/profiles")
	fsys.AddDir("/nix/store/one-system")
	fsys.AddDir("/nix/store/two-system")
	fake := NewFake(fsys)
	ctx := context.Background()

	for _, p := range []string{"/nix/store/one-system", "/nix/store/two-system"} {
		if err := fake.SetProfile(ctx, "/profiles/system", store.New(p)); err != nil {
			t.Fatalf("SetProfile(%s) error: %v", p, err)
		}
	}

	if target, _ := fsys.Link("/profiles/system"); target != "system-2-link" {
		t.Errorf("profile link = %q, want system-2-link", target)
	}
	resolved, err := fsys.EvalSymlinks("/profiles/system")
	if err != nil || resolved != "/nix/store/two-system" {
		t.Errorf("EvalSymlinks = (%q, %v)", resolved, err)
	}

	if err := fake.SetProfile(ctx, "/profiles/system", store.New("/nix/store/unbuilt")); err == nil {
		t.Error("SetProfile should fail for a path that is not in the store")
	}
}
