package manifest

import (
	"fmt"
	"sort"
)

// DefaultSeparator joins mapping keys and values in rendered section lines.
const DefaultSeparator = "="

// Body is the value shape of one manifest section.
type Body interface {
	body()
}

// List is a collection rendered as one indented line per item, in
// lexicographic order regardless of insertion order.
type List []string

// Mapping is a key/value collection rendered as one indented
// "key sep value" line per key, in lexicographic key order.
type Mapping map[string]string

func (List) body()    {}
func (Mapping) body() {}

// Render produces the lines of one section: a blank line and the bracketed
// header when name is non-empty, followed by the sorted body lines. A nil or
// empty body yields only the header, or nothing when name is empty too.
func Render(name string, body Body, sep string) []string {
	var lines []string
	if name != "" {
		lines = append(lines, "", "["+name+"]")
	}
	switch b := body.(type) {
	case List:
		items := append([]string(nil), b...)
		sort.Strings(items)
		for _, item := range items {
			lines = append(lines, "  "+item)
		}
	case Mapping:
		keys := make([]string, 0, len(b))
		for k := range b {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("  %s %s %s", k, sep, b[k]))
		}
	}
	return lines
}
