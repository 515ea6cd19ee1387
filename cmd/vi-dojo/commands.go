package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-dojo/host"
	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/mux"
	"github.com/lixenwraith/vi-dojo/vim"
)

func init() {
	replayCmd.Flags().StringVarP(&replayEngine, "engine", "e", "vim", "engine to drive: vim or tmux")
	replayCmd.Flags().StringVarP(&replayKeys, "keys", "k", "", "keys in <C-x> notation, e.g. \"dd:wq<CR>\"")
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", "", "file to load into the editor (never written)")
	replayCmd.Flags().IntVar(&replayWidth, "width", 80, "screen width")
	replayCmd.Flags().IntVar(&replayHeight, "height", 24, "screen height")

	rootCmd.AddCommand(vimCmd, tmuxCmd, replayCmd, keysCmd, configCmd)
}

var vimCmd = &cobra.Command{
	Use:   "vim [file]",
	Short: "Open the simulated editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, logFile := setupLogging(debugFlag, cfg.LogLevel())
		if logFile != nil {
			defer logFile.Close()
		}

		var name, text string
		if len(args) == 1 {
			name = args[0]
			if text, err = readText(name); err != nil {
				return err
			}
		}
		app, err := newEditorApp(cfg, name, text, host.WriteFile)
		if err != nil {
			return err
		}
		return runTerminal(cfg, app, logger)
	},
}

var tmuxCmd = &cobra.Command{
	Use:   "tmux",
	Short: "Open the simulated multiplexer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, logFile := setupLogging(debugFlag, cfg.LogLevel())
		if logFile != nil {
			defer logFile.Close()
		}

		app, err := newMuxApp(cfg, time.Now())
		if err != nil {
			return err
		}
		return runTerminal(cfg, app, logger)
	},
}

var (
	replayEngine string
	replayKeys   string
	replayFile   string
	replayWidth  int
	replayHeight int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Feed keys to an engine headlessly and print the final screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if replayWidth < 10 || replayHeight < 3 {
			return fmt.Errorf("screen %dx%d is too small", replayWidth, replayHeight)
		}

		var app host.App
		switch replayEngine {
		case "vim":
			text := ""
			if replayFile != "" {
				if text, err = readText(replayFile); err != nil {
					return err
				}
			}
			app, err = newEditorApp(cfg, replayFile, text, nil)
		case "tmux":
			app, err = newMuxApp(cfg, time.Now())
		default:
			return fmt.Errorf("unknown engine %q (want vim or tmux)", replayEngine)
		}
		if err != nil {
			return err
		}

		tr, err := host.Replay(app, input.ParseKeys(replayKeys), replayWidth, replayHeight, host.Options{})
		if err != nil {
			return err
		}
		printTranscript(cmd.OutOrStdout(), tr)
		return nil
	},
}

func printTranscript(w io.Writer, tr *host.Transcript) {
	for _, row := range tr.Screen {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w, strings.Repeat("-", replayWidth))
	for i, out := range tr.Outcomes {
		if out.Message == "" {
			continue
		}
		fmt.Fprintf(w, "%3d %-7s %s\n", i+1, out.Level, out.Message)
	}
	last := tr.Last()
	fmt.Fprintf(w, "mode: %s  keys: %d  quit: %v\n", last.Mode, len(tr.Outcomes), tr.Quit)
}

var keysCmd = &cobra.Command{
	Use:       "keys [vim|tmux]",
	Short:     "List key bindings",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"vim", "tmux"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		which := ""
		if len(args) == 1 {
			which = args[0]
		}
		out := cmd.OutOrStdout()

		if which == "" || which == "tmux" {
			opts, err := cfg.MuxOptions()
			if err != nil {
				return err
			}
			now := time.Now()
			_, res := mux.NewEngine(opts...).Execute(cfg.NewMux(now), "list-keys", now)
			fmt.Fprintln(out, "tmux prefix bindings:")
			fmt.Fprintln(out, res.Output)
		}
		if which == "" || which == "vim" {
			opts, err := cfg.EditorOptions()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "vim leader (%s) bindings:\n", cfg.Editor.Leader)
			printLeaderTree(out, vim.NewEngine(opts...).LeaderTree(), cfg.Editor.Leader)
			fmt.Fprintln(out, "actions for [keys.*] remapping:")
			fmt.Fprintln(out, "  "+strings.Join(input.ActionNames(), " "))
		}
		return nil
	},
}

func printLeaderTree(w io.Writer, tree []vim.LeaderMapping, prefix string) {
	for _, m := range tree {
		seq := prefix + string(m.Key)
		if len(m.Children) > 0 {
			fmt.Fprintf(w, "  %-16s +%s\n", seq, m.Description)
			printLeaderTree(w, m.Children, seq)
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", seq, m.Description)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cfg.Encode(cmd.OutOrStdout())
	},
}
