// Package config owns the declarative build configuration (pug.toml):
// schema, loading, validation, and conversion to manifest descriptors.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root of one build configuration file.
type Config struct {
	Workspace  WorkspaceConfig   `toml:"workspace"`
	Target     TargetConfig      `toml:"target"`
	Platform   PlatformConfig    `toml:"platform"`
	Components []ComponentConfig `toml:"components"`
	Remote     *RemoteConfig     `toml:"remote"`
}

type WorkspaceConfig struct {
	Path      string `toml:"path"`
	UDKDir    string `toml:"udk_dir"`
	UDKURL    string `toml:"udk_url"`
	ConfPath  string `toml:"conf_path"`
	ReportLog string `toml:"report_log"`
}

// TargetConfig describes Conf/target.txt: its location plus the upper-case
// build variables written into it.
type TargetConfig struct {
	Path   string            `toml:"path"`
	Values map[string]string `toml:"values"`
}

// PlatformConfig describes the platform (DSC) manifest. Lists holds
// list-valued sections and Values map-valued sections, both keyed by full
// section name.
type PlatformConfig struct {
	Path    string                       `toml:"path"`
	Update  bool                         `toml:"update"`
	Defines map[string]string            `toml:"defines"`
	Lists   map[string][]string          `toml:"lists"`
	Values  map[string]map[string]string `toml:"values"`
}

// ComponentConfig describes one component (INF) manifest. LibraryClasses
// entries are [class] or [class, inf-path] tuples; Overrides customize this
// component's entry in the platform manifest, in declaration order.
type ComponentConfig struct {
	Path           string                       `toml:"path"`
	Update         bool                         `toml:"update"`
	Defines        map[string]string            `toml:"defines"`
	Lists          map[string][]string          `toml:"lists"`
	Values         map[string]map[string]string `toml:"values"`
	LibraryClasses [][]string                   `toml:"library_classes"`
	Overrides      []OverrideConfig             `toml:"override"`
}

type OverrideConfig struct {
	Section string     `toml:"section"`
	Entries [][]string `toml:"entries"`
}

// RemoteConfig selects an SSH build host instead of the local shell.
type RemoteConfig struct {
	Host                        string `toml:"host"`
	Port                        string `toml:"port"`
	User                        string `toml:"user"`
	KeyPath                     string `toml:"key_path"`
	KnownHostsPath              string `toml:"known_hosts_path"`
	InsecureSkipHostKeyChecking bool   `toml:"insecure_skip_host_key_checking"`
}

// overrideSections are the platform-manifest categories a component entry
// may customize; anything else is a configuration mistake.
var overrideSections = map[string]struct{}{
	"LibraryClasses":   {},
	"PcdsFixedAtBuild": {},
	"BuildOptions":     {},
}

// Load reads, defaults, and validates a build configuration file.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Path == "" {
		cfg.Workspace.Path = "."
	}
	if cfg.Workspace.ConfPath == "" {
		cfg.Workspace.ConfPath = "Conf"
	}
	if cfg.Workspace.ReportLog == "" {
		cfg.Workspace.ReportLog = "report.log"
	}
	if cfg.Target.Path == "" {
		cfg.Target.Path = filepath.Join(cfg.Workspace.ConfPath, "target.txt")
	}
}

// Validate checks the structural rules a configuration must satisfy before
// a pipeline run is attempted.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Workspace.UDKDir) == "" {
		return fmt.Errorf("config: workspace missing udk_dir")
	}
	if strings.TrimSpace(cfg.Workspace.UDKURL) == "" {
		return fmt.Errorf("config: workspace missing udk_url")
	}
	if strings.TrimSpace(cfg.Platform.Path) == "" {
		return fmt.Errorf("config: platform missing path")
	}
	for i, comp := range cfg.Components {
		if strings.TrimSpace(comp.Path) == "" {
			return fmt.Errorf("config: components[%d] missing path", i)
		}
		for _, entry := range comp.LibraryClasses {
			if len(entry) == 0 || len(entry) > 2 {
				return fmt.Errorf("config: components[%d] library_classes entries need 1 or 2 elements", i)
			}
		}
		for _, ov := range comp.Overrides {
			if _, ok := overrideSections[ov.Section]; !ok {
				return fmt.Errorf("config: components[%d] override section %q not recognized", i, ov.Section)
			}
			for _, entry := range ov.Entries {
				if len(entry) != 2 {
					return fmt.Errorf("config: components[%d] override %s entries need 2 elements", i, ov.Section)
				}
			}
		}
	}
	if cfg.Remote != nil {
		if strings.TrimSpace(cfg.Remote.Host) == "" {
			return fmt.Errorf("config: remote missing host")
		}
		if strings.TrimSpace(cfg.Remote.User) == "" {
			return fmt.Errorf("config: remote missing user")
		}
	}
	return nil
}
