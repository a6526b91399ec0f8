package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ConfNames are the toolchain configuration files materialized from the
// BaseTools template directory before a build.
var ConfNames = []string{"build_rule", "tools_def", "target"}

// ConfFiles copies <EDK_TOOLS_PATH>/Conf/<name>.template into the
// destination configuration directory as <name>.txt and records the
// directory as CONF_PATH.
func ConfFiles(env *Environment, names []string, destDir string) error {
	dest, err := filepath.Abs(destDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	env.Set("CONF_PATH", dest)

	src := filepath.Join(env.Get("EDK_TOOLS_PATH"), "Conf")
	for _, name := range names {
		from := filepath.Join(src, name+".template")
		to := filepath.Join(dest, name+".txt")
		log.Debug().Str("from", from).Str("to", to).Msg("conf file")
		if err := copyFile(from, to); err != nil {
			return fmt.Errorf("workspace: conf file %s: %w", name, err)
		}
	}
	return nil
}

func copyFile(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	return os.WriteFile(to, data, 0o644)
}
