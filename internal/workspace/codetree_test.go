package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pugbuild/pug/internal/testutil/testlog"
	"github.com/pugbuild/pug/internal/tools"
)

// fakeRunner records invocations and replays canned results.
type fakeRunner struct {
	invocations []tools.Invocation
	results     []tools.Result
	errs        []error
}

func (r *fakeRunner) Run(inv tools.Invocation) (tools.Result, error) {
	i := len(r.invocations)
	r.invocations = append(r.invocations, inv)
	var res tools.Result
	var err error
	if i < len(r.results) {
		res = r.results[i]
	}
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return res, err
}

// makeCheckout builds a fake UDK checkout containing .git and the given
// packages.
func makeCheckout(t *testing.T, packages ...string) string {
	t.Helper()
	home := t.TempDir()
	for _, dir := range append([]string{".git"}, packages...) {
		if err := os.MkdirAll(filepath.Join(home, dir), 0o755); err != nil {
			t.Fatalf("unexpected mkdir error: %v", err)
		}
	}
	return home
}

func TestCodeTreeClonesWhenCheckoutMissing(t *testing.T) {
	testlog.Start(t)
	home := filepath.Join(t.TempDir(), "edk2")
	runner := &fakeRunner{}
	if _, err := CodeTree(home, "https://example.com/edk2.git", runner); err != nil {
		t.Fatalf("unexpected code tree error: %v", err)
	}
	if len(runner.invocations) != 1 {
		t.Fatalf("expected one git invocation, got %d", len(runner.invocations))
	}
	command := strings.Join(runner.invocations[0].Command, " ")
	if !strings.Contains(command, "git clone") ||
		!strings.Contains(command, "--recurse-submodules") ||
		!strings.Contains(command, "https://example.com/edk2.git") ||
		!strings.Contains(command, home) {
		t.Fatalf("unexpected clone command: %s", command)
	}
	if !runner.invocations[0].Verbose {
		t.Fatalf("code tree acquisition should stream output")
	}
}

func TestCodeTreeRestoresMissingPackages(t *testing.T) {
	testlog.Start(t)
	home := makeCheckout(t, "MdePkg", "BaseTools") // several required packages absent
	runner := &fakeRunner{}
	if _, err := CodeTree(home, "https://example.com/edk2.git", runner); err != nil {
		t.Fatalf("unexpected code tree error: %v", err)
	}
	if len(runner.invocations) != 1 {
		t.Fatalf("expected one git invocation, got %d", len(runner.invocations))
	}
	command := strings.Join(runner.invocations[0].Command, " ")
	if !strings.Contains(command, "git checkout --recurse-submodules .") {
		t.Fatalf("unexpected checkout command: %s", command)
	}
}

func TestCodeTreeCompleteCheckoutIsLeftAlone(t *testing.T) {
	testlog.Start(t)
	home := makeCheckout(t, requiredPackages...)
	runner := &fakeRunner{}
	if _, err := CodeTree(home, "https://example.com/edk2.git", runner); err != nil {
		t.Fatalf("unexpected code tree error: %v", err)
	}
	if len(runner.invocations) != 0 {
		t.Fatalf("expected no git invocations, got %d", len(runner.invocations))
	}
}

func TestCodeTreeGitFailure(t *testing.T) {
	testlog.Start(t)
	home := filepath.Join(t.TempDir(), "edk2")
	runner := &fakeRunner{results: []tools.Result{{ExitCode: 128}}}
	code, err := CodeTree(home, "https://example.com/edk2.git", runner)
	if !errors.Is(err, ErrCodeTree) {
		t.Fatalf("expected ErrCodeTree, got %v", err)
	}
	if code != 128 {
		t.Fatalf("git exit code not surfaced: %d", code)
	}
}
