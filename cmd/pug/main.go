package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pugbuild/pug/internal/config"
	"github.com/pugbuild/pug/internal/logging"
	"github.com/pugbuild/pug/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "0.4.0"

// Represents the root command for the pug build front-end.
var cli struct {
	Config  string `short:"c" default:"pug.toml" help:"Path to the build configuration file." placeholder:"PATH"`
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Verbose bool   `short:"v" help:"Stream build output instead of capturing it."`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Generate manifests and run the UDK build."`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration file."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Carries a child process's exit status up to main.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Represents the 'pug build' command.
type BuildCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed through to the UDK build command."`
}

func (c *BuildCmd) Run() error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Workspace:  cfg.Workspace.Path,
		UDKHome:    cfg.Workspace.UDKDir,
		UDKURL:     cfg.Workspace.UDKURL,
		ConfDir:    cfg.Workspace.ConfPath,
		ReportLog:  cfg.Workspace.ReportLog,
		TargetPath: cfg.Target.Path,
		Target:     cfg.Target.Values,
		Platform:   config.PlatformDescriptor(cfg.Platform),
		Components: config.ComponentDescriptors(cfg.Components),
		Verbose:    cli.Verbose,
		CleanAll:   len(c.Args) > 0 && strings.EqualFold(c.Args[0], "cleanall"),
		Runner:     config.Runner(cfg.Remote),
	}

	code, err := pipeline.Run(opts, c.Args)
	if err != nil {
		log.Error().Err(err).Msg("build failed")
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return err
}

// Represents the 'pug init' command.
type InitCmd struct {
	Output string `short:"o" default:"pug.toml" help:"Destination for the starter configuration." placeholder:"PATH"`
	Force  bool   `help:"Overwrite an existing configuration file."`
}

func (c *InitCmd) Run() error {
	if err := config.WriteTemplate(c.Output, c.Force); err != nil {
		return err
	}
	log.Info().Str("path", c.Output).Msg("wrote configuration template")
	return nil
}

// Represents the 'pug version' command.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("pug " + version)
	return nil
}

func main() {
	logging.ConfigureRuntime()

	kongCtx := kong.Parse(&cli,
		kong.Name("pug"),
		kong.Description("A front-end that generates UDK build manifests and drives the UDK build."),
		kong.UsageOnError(),
	)

	if cli.Debug {
		logging.SetLevel(zerolog.DebugLevel)
	} else if cli.Quiet {
		logging.SetLevel(zerolog.WarnLevel)
	}

	if err := kongCtx.Run(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		log.Error().Err(err).Msg("pug failed")
		os.Exit(1)
	}
}
