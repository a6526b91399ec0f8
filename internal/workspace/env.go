package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Environment is an explicit environment-variable table. Values set here
// shadow the inherited environment but never mutate it; Environ produces the
// entries a Runner merges over the host environment at spawn time.
type Environment struct {
	vars map[string]string
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]string)}
}

// Get returns the table's value for key, falling back to the inherited
// environment.
func (e *Environment) Get(key string) string {
	if v, ok := e.vars[key]; ok {
		return v
	}
	return os.Getenv(key)
}

func (e *Environment) has(key string) bool {
	if _, ok := e.vars[key]; ok {
		return true
	}
	_, ok := os.LookupEnv(key)
	return ok
}

// expand resolves a leading-$ reference against the table, then the
// inherited environment.
func (e *Environment) expand(value string) string {
	if strings.HasPrefix(value, "$") {
		return e.Get(value[1:])
	}
	return value
}

// Set assigns key unconditionally.
func (e *Environment) Set(key, value string) {
	e.vars[key] = e.expand(value)
}

// SetDefault assigns key only when it is absent from both the table and the
// inherited environment.
func (e *Environment) SetDefault(key, value string) {
	if !e.has(key) {
		e.vars[key] = e.expand(value)
	}
}

// Append adds value to the end of a path-list variable.
func (e *Environment) Append(key, value string) {
	value = e.expand(value)
	if existing := e.Get(key); existing != "" {
		value = existing + string(os.PathListSeparator) + value
	}
	e.vars[key] = value
}

// Prepend adds value to the front of a path-list variable.
func (e *Environment) Prepend(key, value string) {
	value = e.expand(value)
	if existing := e.Get(key); existing != "" {
		value = value + string(os.PathListSeparator) + existing
	}
	e.vars[key] = value
}

// Environ returns the table as sorted KEY=VALUE entries.
func (e *Environment) Environ() []string {
	entries := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return entries
}

// Setup builds the environment table for a UDK build rooted at workspace
// with the code tree checked out at udkHome.
func Setup(workspace, udkHome string) (*Environment, error) {
	ws, err := filepath.Abs(workspace)
	if err != nil {
		return nil, err
	}
	udk, err := filepath.Abs(udkHome)
	if err != nil {
		return nil, err
	}
	parent, err := filepath.Abs("..")
	if err != nil {
		return nil, err
	}

	env := NewEnvironment()
	env.SetDefault("WORKSPACE", ws)
	env.SetDefault("UDK_ABSOLUTE_DIR", udk)
	env.SetDefault("EDK_TOOLS_PATH", filepath.Join(env.Get("UDK_ABSOLUTE_DIR"), "BaseTools"))
	env.Append("PACKAGES_PATH", "$UDK_ABSOLUTE_DIR")
	env.Append("PACKAGES_PATH", parent)
	env.SetDefault("CONF_PATH", filepath.Join(env.Get("WORKSPACE"), "Conf"))
	env.SetDefault("BASE_TOOLS_PATH", "$EDK_TOOLS_PATH")
	env.SetDefault("PYTHONPATH", filepath.Join(env.Get("EDK_TOOLS_PATH"), "Source", "Python"))
	env.SetDefault("EDK_TOOLS_PATH_BIN", filepath.Join(env.Get("EDK_TOOLS_PATH"), "BinWrappers", "PosixLike"))
	env.Prepend("PATH", "$EDK_TOOLS_PATH_BIN")

	log.Info().
		Str("WORKSPACE", env.Get("WORKSPACE")).
		Str("PACKAGES_PATH", env.Get("PACKAGES_PATH")).
		Str("EDK_TOOLS_PATH", env.Get("EDK_TOOLS_PATH")).
		Str("CONF_PATH", env.Get("CONF_PATH")).
		Msg("environment")

	return env, nil
}
