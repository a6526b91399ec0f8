package manifest

import (
	"reflect"
	"testing"

	"github.com/pugbuild/pug/internal/testutil/testlog"
)

func TestRenderMappingSortedByKey(t *testing.T) {
	testlog.Start(t)
	got := Render("Defines", Mapping{
		"PLATFORM_NAME":     "MyPlatform",
		"DSC_SPECIFICATION": "0x00010005",
	}, "=")
	want := []string{
		"",
		"[Defines]",
		"  DSC_SPECIFICATION = 0x00010005",
		"  PLATFORM_NAME = MyPlatform",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected mapping render\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestRenderListSortedRegardlessOfInsertionOrder(t *testing.T) {
	testlog.Start(t)
	got := Render("Sources", List{"ZetaDxe.c", "Alpha.c", "Main.c"}, "=")
	want := []string{"", "[Sources]", "  Alpha.c", "  Main.c", "  ZetaDxe.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected list render\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestRenderCustomSeparator(t *testing.T) {
	testlog.Start(t)
	got := Render("LibraryClasses", Mapping{"UefiLib": "MdePkg/Library/UefiLib/UefiLib.inf"}, "|")
	want := []string{"", "[LibraryClasses]", "  UefiLib | MdePkg/Library/UefiLib/UefiLib.inf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected separator render\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestRenderEmptyBodyEmitsOnlyHeader(t *testing.T) {
	testlog.Start(t)
	got := Render("Depex", nil, "=")
	want := []string{"", "[Depex]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected empty-body render\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestRenderEmptyNameAndBodyEmitsNothing(t *testing.T) {
	testlog.Start(t)
	if got := Render("", nil, "="); len(got) != 0 {
		t.Fatalf("expected no lines, got %#v", got)
	}
}

func TestRenderEmptyNameStillRendersBody(t *testing.T) {
	testlog.Start(t)
	got := Render("", List{"b", "a"}, "=")
	want := []string{"  a", "  b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected headerless render\nwant: %#v\ngot:  %#v", want, got)
	}
}
