package tools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ExecRunner executes build commands on the local host through the shell.
type ExecRunner struct{}

// Run launches the shell-joined command in the invocation's working
// directory. In verbose mode the child inherits the caller's stdout and
// stderr; otherwise both streams are drained concurrently into per-call
// buffers so a chatty child can never block on a full pipe.
func (ExecRunner) Run(inv Invocation) (Result, error) {
	command := inv.commandLine()
	log.Info().Str("command", command).Msg("run")

	dir, err := filepath.Abs(inv.Dir)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}

	if inv.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return exitResult(cmd.Run())
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	var outLines, errLines []string
	var wg sync.WaitGroup
	wg.Add(2)
	go drain(stdout, &outLines, &wg)
	go drain(stderr, &errLines, &wg)

	// Both pipes must reach EOF before Wait is allowed to close them.
	wg.Wait()
	res, err := exitResult(cmd.Wait())
	res.Stdout = strings.Join(outLines, "\n")
	res.Stderr = strings.Join(errLines, "\n")
	return res, err
}

// drain appends each line read from the stream, newline stripped, to the
// per-stream buffer until the stream reports end-of-input. Lines are read
// unbounded; capping them would stop the reader early and let the child
// block forever on a full pipe.
func drain(r io.Reader, lines *[]string, wg *sync.WaitGroup) {
	defer wg.Done()
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			*lines = append(*lines, strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			return
		}
	}
}

// exitResult maps the error of exec.Cmd.Run or Wait to a Result. A non-zero
// exit is a legitimate outcome, not an error; only failures to launch or
// reap the child surface as ErrLaunch.
func exitResult(err error) (Result, error) {
	if err == nil {
		return Result{}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return Result{ExitCode: -1}, fmt.Errorf("%w: %v", ErrLaunch, err)
}
