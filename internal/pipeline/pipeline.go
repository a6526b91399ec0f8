package pipeline

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/pugbuild/pug/internal/manifest"
	"github.com/pugbuild/pug/internal/tools"
	"github.com/pugbuild/pug/internal/workspace"
	"github.com/rs/zerolog/log"
)

// ErrBuildFailed marks an external build invocation that ran and exited
// non-zero; its exit code becomes the pipeline's result.
var ErrBuildFailed = errors.New("pipeline: build failed")

// Options carries everything one pipeline run needs. Descriptors are
// consumed read-only.
type Options struct {
	Workspace  string // workspace root
	UDKHome    string // code-tree checkout location
	UDKURL     string // clone source when the checkout is missing
	ConfDir    string // destination configuration directory
	ReportLog  string // build report path handed to the main build
	TargetPath string // target.txt location
	Target     map[string]string
	Platform   manifest.Platform
	Components []manifest.Component
	Verbose    bool // stream main-build output instead of capturing it
	CleanAll   bool // ask the toolchain build to clean first
	Runner     tools.Runner
}

// Run drives the build end to end: acquire the code tree, prepare the
// environment and configuration files, generate manifests, build the native
// toolchain, then run the main build. The first failure short-circuits.
// The returned code is the process exit status to report.
func Run(opts Options, passthrough []string) (int, error) {
	runner := opts.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}

	if code, err := workspace.CodeTree(opts.UDKHome, opts.UDKURL, runner); err != nil {
		return code, err
	}

	env, err := workspace.Setup(opts.Workspace, opts.UDKHome)
	if err != nil {
		return 1, err
	}
	if err := workspace.ConfFiles(env, workspace.ConfNames, opts.ConfDir); err != nil {
		return 1, err
	}
	if err := workspace.TargetTxt(opts.Target, opts.TargetPath); err != nil {
		return 1, err
	}

	ws := env.Get("WORKSPACE")
	if err := manifest.BuildPlatform(opts.Platform, opts.Components, ws); err != nil {
		return 1, err
	}
	if err := manifest.BuildComponents(opts.Components, ws); err != nil {
		return 1, err
	}

	res, err := runner.Run(tools.Invocation{
		Command: toolchainCommand(opts.CleanAll),
		Dir:     env.Get("EDK_TOOLS_PATH"),
		Env:     env.Environ(),
	})
	if err != nil {
		return 1, err
	}
	if res.ExitCode != 0 {
		report(res)
		return res.ExitCode, fmt.Errorf("%w: toolchain build exited %d", ErrBuildFailed, res.ExitCode)
	}

	res, err = runner.Run(tools.Invocation{
		Command: buildCommand(opts.ReportLog, passthrough),
		Dir:     ws,
		Env:     env.Environ(),
		Verbose: opts.Verbose,
	})
	if err != nil {
		return 1, err
	}
	if res.ExitCode != 0 {
		report(res)
		return res.ExitCode, fmt.Errorf("%w: build exited %d", ErrBuildFailed, res.ExitCode)
	}

	log.Info().Msg("success")
	return 0, nil
}

// toolchainCommand builds the native BaseTools executables.
func toolchainCommand(cleanAll bool) []string {
	command := []string{"make", "--jobs", strconv.Itoa(runtime.NumCPU())}
	if cleanAll {
		command = append(command, "clean")
	}
	return command
}

// buildCommand invokes the main UDK build with the computed flags plus the
// caller's pass-through arguments, verbatim.
func buildCommand(reportLog string, passthrough []string) []string {
	command := []string{
		"build",
		"-y", reportLog,
		"-Y", "PCD",
		"-n", strconv.Itoa(runtime.NumCPU()),
		"-N",
	}
	return append(command, passthrough...)
}

// report surfaces the captured output of a failed invocation.
func report(res tools.Result) {
	if res.Stdout != "" {
		fmt.Fprintln(os.Stderr, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintln(os.Stderr, "Error:")
		fmt.Fprintln(os.Stderr, res.Stderr)
	}
}
