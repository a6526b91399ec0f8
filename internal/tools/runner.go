package tools

import (
	"errors"
	"strings"
)

// ErrLaunch marks a command that could not be started at all, as opposed to
// one that ran and exited non-zero.
var ErrLaunch = errors.New("tools: command launch failed")

// Invocation describes one external command launch.
type Invocation struct {
	Command []string // argv tokens, joined with spaces into a single shell command
	Dir     string   // working directory, resolved to an absolute path before launch
	Env     []string // KEY=VALUE entries merged over the inherited environment
	Verbose bool     // stream output directly instead of capturing it
}

// commandLine joins the invocation tokens into the shell command string.
func (inv Invocation) commandLine() string {
	return strings.Join(inv.Command, " ")
}

// Result is the outcome of one invocation. Stdout and Stderr hold the
// captured lines of each stream joined by newlines, with every line's
// trailing newline stripped; both are empty in verbose mode.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts command execution so the pipeline can run against the
// local shell or a remote build host.
type Runner interface {
	Run(inv Invocation) (Result, error)
}

// shellEscape single-quotes a value for safe interpolation into a shell
// command string.
func shellEscape(value string) string {
	if value == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
