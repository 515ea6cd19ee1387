package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/mux"
	"github.com/lixenwraith/vi-dojo/vim"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if cfg == nil || cfg.Mux.Prefix != "<C-b>" {
		t.Error("missing file should still return the defaults")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
leader = ","
leader_timeout = "500ms"

[editor.settings]
tabstop = 8
number = false

[mux]
prefix = "<C-a>"
resize_step = 2

[host]
bell = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.Leader != "," || cfg.Editor.LeaderTimeout.Duration != 500*time.Millisecond {
		t.Errorf("editor: got leader %q timeout %s", cfg.Editor.Leader, cfg.Editor.LeaderTimeout)
	}
	if cfg.Editor.Settings.TabStop != 8 || cfg.Editor.Settings.Number {
		t.Errorf("settings: tabstop %d number %v", cfg.Editor.Settings.TabStop, cfg.Editor.Settings.Number)
	}
	if cfg.Editor.Settings.ShiftWidth != vim.DefaultSettings().ShiftWidth {
		t.Error("unset settings should keep their defaults")
	}
	if cfg.Mux.Prefix != "<C-a>" || cfg.Mux.ResizeStep != 2 || cfg.Mux.Width != mux.DefaultWidth {
		t.Errorf("mux: %+v", cfg.Mux)
	}
	if cfg.Host.Bell || !cfg.Host.Clipboard {
		t.Errorf("host: %+v", cfg.Host)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[mux\n", "parsing config"},
		{"unknown key", "[mux]\ncolour = 1\n", "unknown keys: mux.colour"},
		{"long prefix", "[mux]\nprefix = \"ab\"\n", "mux.prefix"},
		{"bad duration", "[mux]\nprefix_timeout = \"soon\"\n", "parsing config"},
		{"zero step", "[mux]\nresize_step = 0\n", "mux.resize_step"},
		{"tabstop", "[editor.settings]\ntabstop = 0\n", "tabstop"},
		{"clipboard", "[editor.settings]\nclipboard = \"system\"\n", "clipboard"},
		{"log level", "[host]\nlog_level = \"loud\"\n", "host.log_level"},
		{"key section", "[keys.insert]\nx = \"escape\"\n", "keys"},
		{"key action", "[keys.normal]\nx = \"explode\"\n", "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want input.Key
	}{
		{"<C-b>", input.CtrlKey('b')},
		{"<Space>", input.RuneKey(' ')},
		{",", input.RuneKey(',')},
		{"<Esc>", input.NamedKey(input.KeyEscape)},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("%q: expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
	}
	if _, err := ParseKey(""); err == nil {
		t.Error("empty key should fail")
	}
}

func TestMuxOptions(t *testing.T) {
	cfg, err := Parse("[mux]\nprefix = \"<C-a>\"\nresize_step = 3\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err := cfg.MuxOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	e := mux.NewEngine(opts...)
	if e.Prefix() != input.CtrlKey('a') {
		t.Errorf("prefix: got %s", e.Prefix())
	}
	s, _ := e.HandleKeys(cfg.NewMux(testNow), input.ParseKeys("<C-a>%<C-a><A-Left>"), testNow)
	if s.PaneCount() != 2 {
		t.Fatalf("expected 2 panes, got %d", s.PaneCount())
	}
	if w := s.Window().Panes[0].Width; w != 57 {
		t.Errorf("resize step 3 from 60: expected 57, got %d", w)
	}
}

func TestEditorOptions(t *testing.T) {
	cfg, err := Parse(`
[editor]
leader = ","

[keys.normal]
H = "motion_line_end"
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err := cfg.EditorOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	e := vim.NewEngine(opts...)
	s, _ := e.HandleKeys(cfg.NewEditor("a.txt", "hello world"), input.ParseKeys("H"), testNow)
	if s.Cursor().Col != 10 {
		t.Errorf("remapped H: expected col 10, got %d", s.Cursor().Col)
	}

	s, _ = e.HandleKeys(cfg.NewEditor("a.txt", "hello"), input.ParseKeys(","), testNow)
	if !s.Leader.Active {
		t.Error("comma leader should open a sequence")
	}
}

func TestNewEditorCarriesSettings(t *testing.T) {
	cfg := Default()
	cfg.Editor.Settings.TabStop = 2
	s := cfg.NewEditor("", "x")
	if s.Settings.TabStop != 2 {
		t.Errorf("tabstop: expected 2, got %d", s.Settings.TabStop)
	}
}

func TestNewMuxMouse(t *testing.T) {
	cfg := Default()
	cfg.Mux.Mouse = true
	cfg.Mux.Width, cfg.Mux.Height = 80, 24
	s := cfg.NewMux(testNow)
	if !s.MouseMode || s.Width != 80 || s.Height != 24 {
		t.Errorf("mux state: mouse %v size %dx%d", s.MouseMode, s.Width, s.Height)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Host.LogLevel = "debug"
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("expected debug, got %s", cfg.LogLevel())
	}
	cfg.Host.LogLevel = "bogus"
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("invalid level should fall back to info, got %s", cfg.LogLevel())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var sb strings.Builder
	if err := Default().Encode(&sb); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(sb.String(), `prefix = "<C-b>"`) || !strings.Contains(sb.String(), `leader_timeout = "1s"`) {
		t.Errorf("encoded defaults missing fields:\n%s", sb.String())
	}
	cfg, err := Parse(sb.String())
	if err != nil {
		t.Fatalf("parse encoded defaults: %v", err)
	}
	if cfg.Mux.PrefixTimeout.Duration != mux.DefaultPrefixTimeout || cfg.Editor.Settings != vim.DefaultSettings() {
		t.Error("encoded defaults did not decode back to the defaults")
	}
}
