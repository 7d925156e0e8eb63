package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/kexplorer/internal/app"
	"github.com/kk-code-lab/kexplorer/internal/config"
	"github.com/kk-code-lab/kexplorer/internal/logging"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
	"go.uber.org/zap"
)

func printHelp() {
	fmt.Print(`kexplorer - Terminal file explorer

USAGE:
    kexplorer [OPTIONS]

OPTIONS:
    -h, --help         Show this help message and exit
    -d, --dir DIR      Start in DIR instead of the current directory

ENVIRONMENT:
    KEXPLORER_SETTINGS_DIR         Settings directory (default ~/.kexplorer)
    KEXPLORER_LOG_LEVEL            debug, info, warn or error (default info)
    KEXPLORER_LOG_FILE             Log file (default <settings dir>/kexplorer.log)
    KEXPLORER_PREVIEW_MAX_BYTES    Largest text preview loaded in full
    KEXPLORER_WATCH                Re-list on external changes (default true)
`)
}

type cliOptions struct {
	help bool
	dir  string
}

var errUsage = errors.New("usage")

func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-d" || arg == "--dir":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%w: %s needs a directory", errUsage, arg)
			}
			i++
			opts.dir = args[i]
		case strings.HasPrefix(arg, "--dir="):
			opts.dir = strings.TrimPrefix(arg, "--dir=")
		default:
			return opts, fmt.Errorf("%w: unknown argument %q", errUsage, arg)
		}
	}
	return opts, nil
}

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII names render on minimal terminals
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printHelp()
		os.Exit(2)
	}
	if opts.help {
		printHelp()
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cliOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.SettingsDir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Development: cfg.LogDev,
		OutputPaths: []string{cfg.LogFile},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = zap.NewNop()
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, err := prefs.Open(cfg.SettingsFile(), prefs.WithLogger(logger.Named("prefs")))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("preferences not saved on exit", zap.Error(err))
		}
	}()

	app, err := apppkg.NewApplication(apppkg.Options{
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		StartDir: opts.dir,
	})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}
