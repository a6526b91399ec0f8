package manifest

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// infSections are the recognized component (INF) section base names. Section
// keys may carry an architecture qualifier after a dot, e.g. "Sources.X64".
var infSections = map[string]struct{}{
	"Sources":        {},
	"Packages":       {},
	"LibraryClasses": {},
	"Protocols":      {},
	"Ppis":           {},
	"Guids":          {},
	"FeaturePcd":     {},
	"Pcd":            {},
	"BuildOptions":   {},
	"Depex":          {},
	"UserExtensions": {},
}

// Component describes one component-level (INF) manifest.
type Component struct {
	Path           string          // manifest location, relative paths resolve against the workspace
	Update         bool            // false skips the write, the resolved path is still reported
	Defines        Mapping         // mandatory, generation fails when empty
	LibraryClasses [][2]string     // class/path tuples; the INF keeps the class names only
	Sections       map[string]Body // remaining sections, keyed by full name incl. qualifier
	Overrides      []Override      // nested blocks for this component's platform entry
}

// BuildComponents renders one manifest per component descriptor.
func BuildComponents(components []Component, workspace string) error {
	for _, c := range components {
		if err := buildComponent(c, workspace); err != nil {
			return err
		}
	}
	return nil
}

func buildComponent(c Component, workspace string) error {
	path := absPath(c.Path, workspace)
	log.Info().Str("path", path).Msg("component manifest")
	if !c.Update {
		return nil
	}
	if len(c.Defines) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingDefines, c.Path)
	}

	lines := Render("Defines", c.Defines, DefaultSeparator)

	if len(c.LibraryClasses) > 0 {
		classes := make(List, 0, len(c.LibraryClasses))
		for _, entry := range c.LibraryClasses {
			classes = append(classes, entry[0])
		}
		lines = append(lines, Render("LibraryClasses", classes, DefaultSeparator)...)
	}

	for _, name := range sortedSectionNames(c.Sections) {
		if !recognizedSection(name) {
			log.Debug().Str("section", name).Str("path", c.Path).Msg("skipping unrecognized section")
			continue
		}
		lines = append(lines, Render(name, c.Sections[name], DefaultSeparator)...)
	}

	return Write(path, strings.Join(lines, "\n"), Signature)
}

// recognizedSection reports whether a section key's base name, the text
// before an optional architecture qualifier, belongs to the INF section set.
func recognizedSection(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	_, ok := infSections[base]
	return ok
}
