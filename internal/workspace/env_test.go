package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pugbuild/pug/internal/testutil/testlog"
)

// clearHostEnv unregisters keys from the inherited environment for the
// duration of the test, restoring them afterwards.
func clearHostEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestEnvironmentSetExpandsReferences(t *testing.T) {
	testlog.Start(t)
	env := NewEnvironment()
	env.Set("EDK_TOOLS_PATH", "/srv/udk/BaseTools")
	env.Set("BASE_TOOLS_PATH", "$EDK_TOOLS_PATH")
	if got := env.Get("BASE_TOOLS_PATH"); got != "/srv/udk/BaseTools" {
		t.Fatalf("reference not expanded: %q", got)
	}
}

func TestEnvironmentSetDefaultRespectsExisting(t *testing.T) {
	testlog.Start(t)
	t.Setenv("PUG_TEST_CONF", "/from/host")
	env := NewEnvironment()
	env.SetDefault("PUG_TEST_CONF", "/computed")
	if got := env.Get("PUG_TEST_CONF"); got != "/from/host" {
		t.Fatalf("conditional assignment overrode host value: %q", got)
	}

	clearHostEnv(t, "PUG_TEST_CONF")
	env = NewEnvironment()
	env.SetDefault("PUG_TEST_CONF", "/computed")
	if got := env.Get("PUG_TEST_CONF"); got != "/computed" {
		t.Fatalf("conditional assignment skipped absent key: %q", got)
	}
}

func TestEnvironmentAppendPrepend(t *testing.T) {
	testlog.Start(t)
	clearHostEnv(t, "PUG_TEST_PATHLIST")
	sep := string(os.PathListSeparator)

	env := NewEnvironment()
	env.Append("PUG_TEST_PATHLIST", "/a")
	env.Append("PUG_TEST_PATHLIST", "/b")
	env.Prepend("PUG_TEST_PATHLIST", "/front")
	if got := env.Get("PUG_TEST_PATHLIST"); got != "/front"+sep+"/a"+sep+"/b" {
		t.Fatalf("unexpected path list: %q", got)
	}
}

func TestEnvironmentEnvironSorted(t *testing.T) {
	testlog.Start(t)
	env := NewEnvironment()
	env.Set("B_KEY", "2")
	env.Set("A_KEY", "1")
	got := env.Environ()
	if len(got) != 2 || got[0] != "A_KEY=1" || got[1] != "B_KEY=2" {
		t.Fatalf("unexpected environ: %#v", got)
	}
}

func TestSetupComputesWorkspaceTable(t *testing.T) {
	testlog.Start(t)
	clearHostEnv(t,
		"WORKSPACE", "UDK_ABSOLUTE_DIR", "EDK_TOOLS_PATH", "PACKAGES_PATH",
		"CONF_PATH", "BASE_TOOLS_PATH", "PYTHONPATH", "EDK_TOOLS_PATH_BIN",
	)

	ws := t.TempDir()
	udk := t.TempDir()
	env, err := Setup(ws, udk)
	if err != nil {
		t.Fatalf("unexpected setup error: %v", err)
	}

	if got := env.Get("WORKSPACE"); got != ws {
		t.Fatalf("unexpected WORKSPACE: %q", got)
	}
	tools := filepath.Join(udk, "BaseTools")
	if got := env.Get("EDK_TOOLS_PATH"); got != tools {
		t.Fatalf("unexpected EDK_TOOLS_PATH: %q", got)
	}
	if got := env.Get("BASE_TOOLS_PATH"); got != tools {
		t.Fatalf("unexpected BASE_TOOLS_PATH: %q", got)
	}
	if got := env.Get("CONF_PATH"); got != filepath.Join(ws, "Conf") {
		t.Fatalf("unexpected CONF_PATH: %q", got)
	}
	if got := env.Get("PACKAGES_PATH"); !strings.HasPrefix(got, udk) {
		t.Fatalf("PACKAGES_PATH should start with the code tree: %q", got)
	}
	bin := filepath.Join(tools, "BinWrappers", "PosixLike")
	if got := env.Get("PATH"); !strings.HasPrefix(got, bin+string(os.PathListSeparator)) {
		t.Fatalf("PATH not prefixed with wrapper directory: %q", got)
	}
}
