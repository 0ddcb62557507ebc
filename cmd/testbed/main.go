// Trackbed - interactive testbed for frame-differencing motion tracking
// over a live camera or a list of video files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-trackbed/internal/config"
	"github.com/teslashibe/go-trackbed/internal/log"
	"github.com/teslashibe/go-trackbed/pkg/session"
	"github.com/teslashibe/go-trackbed/pkg/source"
	"github.com/teslashibe/go-trackbed/pkg/testbed"
)

// Process exit codes.
const (
	exitOK     = 0
	exitConfig = 1 // Manifest or tuning file unusable, bad start index
	exitSource = 2 // A video source could not be opened
	exitFailed = 3 // Any other runtime failure
)

type options struct {
	manifest string
	start    int
	config   string
	logLevel string
}

func main() {
	os.Exit(run(parseFlags()))
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.manifest, "manifest", config.ManifestPath(), "File listing one video path per line")
	flag.IntVar(&o.start, "source", 0, "Starting source index (0 = camera)")
	flag.StringVar(&o.config, "config", config.ConfigPath(), "Optional YAML tuning file")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()
	return o
}

func run(o options) int {
	cfg, err := config.Load(o.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** %v ***\n", err)
		return exitConfig
	}

	level := config.LogLevel(cfg.LogLevel)
	if o.logLevel != "" {
		level = o.logLevel
	}
	log.Init(level)

	log.Debug("config loaded", "path", o.config, "log_level", level)

	sources, err := source.LoadManifest(o.manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** Unable to open input file: %v ***\n", err)
		return fail(err)
	}
	log.Info("manifest loaded", "path", o.manifest, "files", sources.Files())

	display := testbed.NewWindowDisplay()
	tb, err := testbed.New(sources, o.start, source.NewGocvOpener(cfg.Camera), display, testbed.Options{
		PollInterval: cfg.PollInterval,
		Motion:       cfg.Motion,
		Menu:         os.Stdout,
		Logger:       log.With("manifest", o.manifest),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "*** %v ***\n", err)
		return fail(err)
	}
	defer tb.Close()

	session.PrintMenu(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := tb.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "*** %v ***\n", err)
		return fail(err)
	}
	return exitOK
}

// fail logs err once the logger is up and returns its exit code.
func fail(err error) int {
	code := exitCode(err)
	log.Error("testbed failed", "error", err, "exit", code)
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case testbed.IsSourceError(err):
		return exitSource
	case errors.Is(err, source.ErrManifest), errors.Is(err, config.ErrInvalid), errors.Is(err, session.ErrSourceIndex):
		return exitConfig
	default:
		return exitFailed
	}
}
