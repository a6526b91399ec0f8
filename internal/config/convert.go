package config

import (
	"github.com/pugbuild/pug/internal/manifest"
	"github.com/pugbuild/pug/internal/tools"
)

// PlatformDescriptor converts the platform configuration into its manifest
// descriptor.
func PlatformDescriptor(cfg PlatformConfig) manifest.Platform {
	return manifest.Platform{
		Path:     cfg.Path,
		Update:   cfg.Update,
		Defines:  manifest.Mapping(cfg.Defines),
		Sections: sections(cfg.Lists, cfg.Values),
	}
}

// ComponentDescriptors converts the component configurations into manifest
// descriptors, preserving override declaration order.
func ComponentDescriptors(cfgs []ComponentConfig) []manifest.Component {
	components := make([]manifest.Component, 0, len(cfgs))
	for _, cfg := range cfgs {
		components = append(components, manifest.Component{
			Path:           cfg.Path,
			Update:         cfg.Update,
			Defines:        manifest.Mapping(cfg.Defines),
			LibraryClasses: libraryClasses(cfg.LibraryClasses),
			Sections:       sections(cfg.Lists, cfg.Values),
			Overrides:      overrides(cfg.Overrides),
		})
	}
	return components
}

// Runner selects the build-command runner: the configured SSH host when a
// remote block is present, the local shell otherwise.
func Runner(remote *RemoteConfig) tools.Runner {
	if remote == nil {
		return tools.ExecRunner{}
	}
	return tools.SSHRunner{
		Host:                        remote.Host,
		Port:                        remote.Port,
		User:                        remote.User,
		KeyPath:                     remote.KeyPath,
		KnownHostsPath:              remote.KnownHostsPath,
		InsecureSkipHostKeyChecking: remote.InsecureSkipHostKeyChecking,
	}
}

func sections(lists map[string][]string, values map[string]map[string]string) map[string]manifest.Body {
	if len(lists) == 0 && len(values) == 0 {
		return nil
	}
	out := make(map[string]manifest.Body, len(lists)+len(values))
	for name, items := range lists {
		out[name] = manifest.List(items)
	}
	for name, mapping := range values {
		out[name] = manifest.Mapping(mapping)
	}
	return out
}

func libraryClasses(entries [][]string) [][2]string {
	if len(entries) == 0 {
		return nil
	}
	out := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		var tuple [2]string
		copy(tuple[:], entry)
		out = append(out, tuple)
	}
	return out
}

func overrides(cfgs []OverrideConfig) []manifest.Override {
	if len(cfgs) == 0 {
		return nil
	}
	out := make([]manifest.Override, 0, len(cfgs))
	for _, cfg := range cfgs {
		ov := manifest.Override{Name: cfg.Section}
		for _, entry := range cfg.Entries {
			ov.Entries = append(ov.Entries, [2]string{entry[0], entry[1]})
		}
		out = append(out, ov)
	}
	return out
}
