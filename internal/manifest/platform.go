package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Override is one nested override block attached to a component's entry in
// the platform manifest. Entry order is caller-significant and preserved.
type Override struct {
	Name    string
	Entries [][2]string
}

// Platform describes one platform-level (DSC) manifest.
type Platform struct {
	Path     string          // manifest location, relative paths resolve against the workspace
	Update   bool            // false skips the write, the resolved path is still reported
	Defines  Mapping         // mandatory leading section
	Sections map[string]Body // additional top-level sections, rendered after Defines by name
}

// overrideSeparator returns the key/value separator used inside an override
// block. LibraryClasses and PcdsFixedAtBuild entries pair a name with a path
// or value using "|"; BuildOptions uses plain assignment.
func overrideSeparator(name string) string {
	switch name {
	case "LibraryClasses", "PcdsFixedAtBuild":
		return "|"
	default:
		return DefaultSeparator
	}
}

// BuildPlatform renders the platform manifest and writes it under the
// generated-file signature. Components contribute one line each to the
// Components section, with their override blocks nested in braces.
func BuildPlatform(p Platform, components []Component, workspace string) error {
	path := absPath(p.Path, workspace)
	log.Info().Str("path", path).Msg("platform manifest")
	if !p.Update {
		return nil
	}

	lines := Render("Defines", p.Defines, DefaultSeparator)
	for _, name := range sortedSectionNames(p.Sections) {
		lines = append(lines, Render(name, p.Sections[name], DefaultSeparator)...)
	}

	lines = append(lines, Render("Components", nil, DefaultSeparator)...)
	for _, c := range components {
		entry := "  " + c.Path
		if len(c.Overrides) > 0 {
			entry += " {"
		}
		lines = append(lines, entry)
		for _, ov := range c.Overrides {
			lines = append(lines, "    <"+ov.Name+">")
			sep := overrideSeparator(ov.Name)
			for _, e := range ov.Entries {
				lines = append(lines, fmt.Sprintf("      %s %s %s", e[0], sep, e[1]))
			}
		}
		if len(c.Overrides) > 0 {
			lines = append(lines, "  }")
		}
	}

	return Write(path, strings.Join(lines, "\n"), Signature)
}

func sortedSectionNames(sections map[string]Body) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
