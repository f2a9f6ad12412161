package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOSExecutor_RunQuiet(t *testing.T) {
	exec := &osExecutor{}
	ctx := context.Background()

	if err := exec.RunQuiet(ctx, "sh", "-c", "echo noise; echo more >&2; exit 0"); err != nil {
		t.Errorf("RunQuiet(exit 0) error: %v", err)
	}

	err := exec.RunQuiet(ctx, "sh", "-c", "exit 3")
	code, ok := ExitCode(err)
	if !ok || code != 3 {
		t.Errorf("RunQuiet(exit 3) = %v, want ExitError with code 3", err)
	}

	err = exec.RunQuiet(ctx, "genctl-definitely-not-a-binary")
	if err == nil {
		t.Fatal("RunQuiet of missing binary should fail")
	}
	if _, ok := ExitCode(err); ok {
		t.Error("start failure should not be reported as an exit code")
	}
}

func TestOSExecutor_Capture(t *testing.T) {
	exec := &osExecutor{}

	stdout, stderr, err := exec.Capture(context.Background(), "sh", "-c", "printf '[]'; printf 'oops' >&2; exit 1")
	if string(stdout) != "[]" {
		t.Errorf("stdout = %q, want %q", stdout, "[]")
	}
	if string(stderr) != "oops" {
		t.Errorf("stderr = %q, want %q", stderr, "oops")
	}
	if code, ok := ExitCode(err); !ok || code != 1 {
		t.Errorf("err = %v, want exit code 1", err)
	}
}

func TestOSFileSystem_SymlinkRoundTrip(t *testing.T) {
	fsys := &osFileSystem{}
	dir := t.TempDir()

	target := filepath.Join(dir, "store", "xyz-system")
	if err := fsys.MkdirAll(target, 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	link := filepath.Join(dir, "current")
	if err := fsys.Symlink(target, link); err != nil {
		t.Fatalf("Symlink error: %v", err)
	}

	got, err := fsys.Readlink(link)
	if err != nil || got != target {
		t.Errorf("Readlink = (%q, %v), want %q", got, err, target)
	}

	want, _ := filepath.EvalSymlinks(target)
	resolved, err := fsys.EvalSymlinks(link)
	if err != nil || resolved != want {
		t.Errorf("EvalSymlinks = (%q, %v), want %q", resolved, err, want)
	}

	info, err := fsys.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat error: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("Lstat should report a symlink")
	}
	if !fsys.Exists(link) {
		t.Error("Exists should follow the link")
	}
}
