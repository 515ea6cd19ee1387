package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args against an empty home directory
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	configPath, debugFlag = "", false
	replayEngine, replayKeys, replayFile, replayWidth, replayHeight = "vim", "", "", 80, 24

	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReplayVim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runCLI(t, "replay", "--file", path, "--keys", "ddp:w<CR>", "--width", "40", "--height", "6")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != "  1 beta" || lines[1] != "  2 alpha" {
		t.Errorf("screen:\n%s", out)
	}
	if !strings.Contains(out, "written") || !strings.Contains(out, "mode: NORMAL") {
		t.Errorf("transcript:\n%s", out)
	}

	// replay never saves
	data, _ := os.ReadFile(path)
	if string(data) != "alpha\nbeta\n" {
		t.Errorf("replay modified the file: %q", data)
	}
}

func TestReplayTmux(t *testing.T) {
	out, err := runCLI(t, "replay", "-e", "tmux", "-k", "<C-b>d")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out, "quit: true") {
		t.Errorf("detach should end the replay:\n%s", out)
	}
}

func TestReplayRejects(t *testing.T) {
	if _, err := runCLI(t, "replay", "--engine", "emacs"); err == nil || !strings.Contains(err.Error(), "unknown engine") {
		t.Errorf("unknown engine: %v", err)
	}
	if _, err := runCLI(t, "replay", "--width", "2"); err == nil || !strings.Contains(err.Error(), "too small") {
		t.Errorf("tiny screen: %v", err)
	}
}

func TestKeysCommand(t *testing.T) {
	out, err := runCLI(t, "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	for _, want := range []string{"tmux prefix bindings:", "<C-b> %", "vim leader (<Space>) bindings:", "motion_line_end"} {
		if !strings.Contains(out, want) {
			t.Errorf("keys output missing %q", want)
		}
	}

	out, err = runCLI(t, "keys", "tmux")
	if err != nil {
		t.Fatalf("keys tmux: %v", err)
	}
	if strings.Contains(out, "vim leader") {
		t.Error("keys tmux should list only tmux bindings")
	}

	if _, err := runCLI(t, "keys", "nano"); err == nil {
		t.Error("keys nano should fail")
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, `prefix = "<C-b>"`) {
		t.Errorf("config output:\n%s", out)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config")
	if err == nil || !strings.Contains(err.Error(), "missing.toml") {
		t.Errorf("missing explicit config: %v", err)
	}
}

func TestExplicitConfigApplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[mux]\nprefix = \"<C-a>\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runCLI(t, "--config", path, "keys", "tmux")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out, "<C-a> %") {
		t.Errorf("custom prefix not listed:\n%s", out)
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	text, err := readText(filepath.Join(dir, "new.txt"))
	if err != nil || text != "" {
		t.Errorf("missing file: %q %v", text, err)
	}

	path := filepath.Join(dir, "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if text, _ := readText(path); text != "a\nb" {
		t.Errorf("crlf: got %q", text)
	}
}
