package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Signature is the banner prefixed to every generated manifest.
const Signature = "#\n# This file is automatically generated by pug.\n#\n"

// Write places content at path, creating missing ancestor directories.
// When the destination already holds byte-identical content the write is
// skipped entirely, preserving the file's modification time.
func Write(path, content, signature string) error {
	if signature != "" {
		content = signature + content
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("manifest: create %s: %w", dir, err)
		}
	}
	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// absPath resolves a descriptor path against the workspace root.
func absPath(path, workspace string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}
