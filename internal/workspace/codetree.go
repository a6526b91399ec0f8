package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pugbuild/pug/internal/tools"
	"github.com/rs/zerolog/log"
)

// ErrCodeTree marks a code tree that could not be fetched or repaired.
// The build cannot proceed without a usable checkout.
var ErrCodeTree = errors.New("workspace: code tree unavailable")

// requiredPackages are the sub-trees a usable UDK checkout must contain.
var requiredPackages = []string{
	"MdeModulePkg", "MdePkg", "BaseTools",
	"CryptoPkg", "ShellPkg", "UefiCpuPkg",
	"PcAtChipsetPkg",
}

// CodeTree ensures a usable UDK checkout at home. A missing checkout is
// cloned from url; a checkout missing required packages is restored with a
// recursive git checkout. Either git invocation streams its output. On a
// git failure the returned code is git's own exit status, so the pipeline
// can report it verbatim.
func CodeTree(home, url string, runner tools.Runner) (int, error) {
	home, err := filepath.Abs(home)
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrCodeTree, err)
	}

	var command []string
	if _, err := os.Stat(filepath.Join(home, ".git")); err != nil {
		log.Warn().Str("home", home).Msg("no local UDK code tree, cloning")
		command = []string{
			"git", "clone",
			"--jobs", strconv.Itoa(runtime.NumCPU()),
			"--recurse-submodules",
			url,
			home,
		}
	} else if missing := missingPackage(home); missing != "" {
		log.Warn().Str("package", missing).Msg("missing package, restoring checkout")
		command = []string{
			"cd", home, ";",
			"git", "checkout",
			"--recurse-submodules",
			".",
		}
	} else {
		return 0, nil
	}

	res, err := runner.Run(tools.Invocation{Command: command, Verbose: true})
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrCodeTree, err)
	}
	if res.ExitCode != 0 {
		return res.ExitCode, fmt.Errorf("%w: git exited %d", ErrCodeTree, res.ExitCode)
	}
	return 0, nil
}

// missingPackage returns the first required package absent from the
// checkout, or "" when all are present.
func missingPackage(home string) string {
	for _, pkg := range requiredPackages {
		if _, err := os.Stat(filepath.Join(home, pkg)); err != nil {
			return pkg
		}
	}
	return ""
}
