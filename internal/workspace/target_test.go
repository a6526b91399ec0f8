package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pugbuild/pug/internal/testutil/testlog"
)

func TestTargetTxtUpperCaseKeysSorted(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "Conf", "target.txt")
	values := map[string]string{
		"TOOL_CHAIN_TAG":  "GCC5",
		"ACTIVE_PLATFORM": "FooBarPkg/FooBar.dsc",
		"TARGET":          "RELEASE",
		"path":            "ignored bookkeeping field",
	}
	if err := TargetTxt(values, path); err != nil {
		t.Fatalf("unexpected target.txt error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	want := "ACTIVE_PLATFORM = FooBarPkg/FooBar.dsc\nTARGET = RELEASE\nTOOL_CHAIN_TAG = GCC5"
	if string(data) != want {
		t.Fatalf("unexpected target.txt\nwant:\n%s\ngot:\n%s", want, data)
	}
}

func TestTargetTxtRewriteIsIdempotent(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "target.txt")
	values := map[string]string{"TARGET": "DEBUG"}
	if err := TargetTxt(values, path); err != nil {
		t.Fatalf("unexpected target.txt error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected stat error: %v", err)
	}
	if err := TargetTxt(values, path); err != nil {
		t.Fatalf("unexpected rewrite error: %v", err)
	}
	again, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected stat error: %v", err)
	}
	if !again.ModTime().Equal(info.ModTime()) {
		t.Fatalf("identical rewrite touched mtime")
	}
}
