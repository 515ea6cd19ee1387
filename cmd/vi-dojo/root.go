package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-dojo/bell"
	"github.com/lixenwraith/vi-dojo/config"
	"github.com/lixenwraith/vi-dojo/host"
	"github.com/lixenwraith/vi-dojo/mux"
	"github.com/lixenwraith/vi-dojo/status"
	"github.com/lixenwraith/vi-dojo/vim"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:           "vi-dojo",
	Short:         "Practice vim and tmux keystrokes in a simulated editor and multiplexer",
	Long:          "vi-dojo runs keystroke-accurate simulations of vim and tmux. Nothing is executed: panes echo typed text and :w only writes the file given on the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/vi-dojo/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write logs to "+logDir+"/"+logFileName)
}

// loadConfig reads --config, or the default path when it exists
// An explicit --config that does not exist is an error
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		if configPath != "" {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, nil
	}
	return cfg, err
}

func newEditorApp(cfg *config.Config, filename, text string, save host.SaveFunc) (*host.Editor, error) {
	opts, err := cfg.EditorOptions()
	if err != nil {
		return nil, err
	}
	return host.NewEditor(vim.NewEngine(opts...), cfg.NewEditor(filename, text), save), nil
}

func newMuxApp(cfg *config.Config, now time.Time) (*host.Multiplexer, error) {
	opts, err := cfg.MuxOptions()
	if err != nil {
		return nil, err
	}
	return host.NewMultiplexer(mux.NewEngine(opts...), cfg.NewMux(now)), nil
}

// readText loads a file for editing; a missing file starts an empty buffer
// One trailing newline is dropped since saving adds it back
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimSuffix(text, "\n"), nil
}

// runTerminal owns the real terminal for the life of one app
func runTerminal(cfg *config.Config, app host.App, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	host.SetCrashScreen(screen)
	defer func() {
		host.SetCrashScreen(nil)
		screen.Fini()
	}()

	reg := status.NewRegistry()
	opts := host.Options{Logger: logger, Status: reg}

	if cfg.Host.Bell {
		b := bell.New()
		if err := b.Init(); err != nil {
			logger.Warn("bell disabled", "err", err)
		} else {
			defer b.Close()
			opts.Bell = b
		}
	}
	if cfg.Host.Clipboard {
		w := host.NewClipboardWriter(host.SystemClipboard{}, reg, logger)
		defer w.Close()
		opts.Clipboard = w
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = host.New(screen, app, opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
