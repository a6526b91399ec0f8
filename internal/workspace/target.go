package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pugbuild/pug/internal/manifest"
)

// TargetTxt renders the build target configuration (Conf/target.txt): one
// "KEY = VALUE" line per upper-case key, sorted. Keys containing lower-case
// letters are treated as bookkeeping fields and skipped.
func TargetTxt(values map[string]string, path string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if isUpper(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s = %s", k, values[k]))
	}
	return manifest.Write(path, strings.Join(lines, "\n"), "")
}

func isUpper(s string) bool {
	return s != "" && s == strings.ToUpper(s) && s != strings.ToLower(s)
}
