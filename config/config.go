// @lixen: #focus{config[load,merge,options]}
// Package config loads vi-dojo settings from TOML and turns them into engine options
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/mux"
	"github.com/lixenwraith/vi-dojo/vim"
)

// ErrNotFound is returned alongside the defaults when the config file does not exist
var ErrNotFound = errors.New("config file not found")

// Duration is a time.Duration written as a string ("750ms", "2s") in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go notation
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Editor configures the vim engine
type Editor struct {
	Settings      vim.Settings `toml:"settings"`
	Leader        string       `toml:"leader"`
	LeaderTimeout Duration     `toml:"leader_timeout"`
}

// Mux configures the multiplexer engine
type Mux struct {
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	Prefix        string   `toml:"prefix"`
	PrefixTimeout Duration `toml:"prefix_timeout"`
	ResizeStep    int      `toml:"resize_step"`
	Mouse         bool     `toml:"mouse"`
}

// Host configures the terminal front end
type Host struct {
	Bell      bool   `toml:"bell"`
	Clipboard bool   `toml:"clipboard"`
	LogLevel  string `toml:"log_level"`
}

// Config is the complete file layout
type Config struct {
	Editor Editor          `toml:"editor"`
	Mux    Mux             `toml:"mux"`
	Host   Host            `toml:"host"`
	Keys   input.KeyConfig `toml:"keys,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Editor: Editor{
			Settings:      vim.DefaultSettings(),
			Leader:        "<Space>",
			LeaderTimeout: Duration{vim.DefaultLeaderTimeout},
		},
		Mux: Mux{
			Width:         mux.DefaultWidth,
			Height:        mux.DefaultHeight,
			Prefix:        "<C-b>",
			PrefixTimeout: Duration{mux.DefaultPrefixTimeout},
			ResizeStep:    mux.DefaultResizeStep,
		},
		Host: Host{
			Bell:      true,
			Clipboard: true,
			LogLevel:  "info",
		},
	}
}

// DefaultPath returns ~/.config/vi-dojo/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vi-dojo", "config.toml"), nil
}

// Load decodes the file at path over the defaults
// A missing file returns the defaults together with ErrNotFound
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, ErrNotFound
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkUndecoded rejects keys that match no field; [keys.*] is free-form and excluded
func checkUndecoded(md toml.MetaData) error {
	var unknown []string
	for _, k := range md.Undecoded() {
		if len(k) > 0 && k[0] == "keys" {
			continue
		}
		unknown = append(unknown, k.String())
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown keys: %s", strings.Join(unknown, ", "))
}

// Validate checks value ranges and that every key string decodes
func (c *Config) Validate() error {
	if _, err := ParseKey(c.Editor.Leader); err != nil {
		return fmt.Errorf("editor.leader: %w", err)
	}
	if _, err := ParseKey(c.Mux.Prefix); err != nil {
		return fmt.Errorf("mux.prefix: %w", err)
	}
	if c.Editor.LeaderTimeout.Duration <= 0 {
		return fmt.Errorf("editor.leader_timeout must be positive, got %s", c.Editor.LeaderTimeout)
	}
	if c.Mux.PrefixTimeout.Duration <= 0 {
		return fmt.Errorf("mux.prefix_timeout must be positive, got %s", c.Mux.PrefixTimeout)
	}
	if c.Mux.ResizeStep < 1 {
		return fmt.Errorf("mux.resize_step must be at least 1, got %d", c.Mux.ResizeStep)
	}
	if c.Mux.Width < 0 || c.Mux.Height < 0 {
		return fmt.Errorf("mux size must not be negative, got %dx%d", c.Mux.Width, c.Mux.Height)
	}
	s := c.Editor.Settings
	if s.TabStop < 1 || s.ShiftWidth < 1 {
		return fmt.Errorf("editor.settings: tabstop and shiftwidth must be at least 1")
	}
	if s.Clipboard != "" && s.Clipboard != "unnamed" && s.Clipboard != "unnamedplus" {
		return fmt.Errorf("editor.settings.clipboard: unknown value %q", s.Clipboard)
	}
	if _, err := log.ParseLevel(c.Host.LogLevel); err != nil {
		return fmt.Errorf("host.log_level: %w", err)
	}
	if _, err := c.keyTable(); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// ParseKey decodes a single key written in bracket-tag notation ("<C-b>", "<Space>", ",")
func ParseKey(s string) (input.Key, error) {
	keys := input.ParseKeys(s)
	if len(keys) != 1 {
		return input.Key{}, fmt.Errorf("expected one key, got %q", s)
	}
	return keys[0], nil
}

// keyTable returns the default table with [keys.*] overrides applied, or nil when none are set
func (c *Config) keyTable() (*input.KeyTable, error) {
	if len(c.Keys) == 0 {
		return nil, nil
	}
	override, err := input.ParseKeyConfig(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// EditorOptions returns the vim engine options for this configuration
func (c *Config) EditorOptions() ([]vim.Option, error) {
	leader, err := ParseKey(c.Editor.Leader)
	if err != nil {
		return nil, fmt.Errorf("editor.leader: %w", err)
	}
	opts := []vim.Option{vim.WithLeader(leader, c.Editor.LeaderTimeout.Duration)}

	kt, err := c.keyTable()
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	if kt != nil {
		opts = append(opts, vim.WithKeyTable(kt))
	}
	return opts, nil
}

// MuxOptions returns the multiplexer engine options for this configuration
func (c *Config) MuxOptions() ([]mux.Option, error) {
	prefix, err := ParseKey(c.Mux.Prefix)
	if err != nil {
		return nil, fmt.Errorf("mux.prefix: %w", err)
	}
	return []mux.Option{
		mux.WithPrefix(prefix, c.Mux.PrefixTimeout.Duration),
		mux.WithResizeStep(c.Mux.ResizeStep),
	}, nil
}

// NewEditor creates editor state carrying the configured settings
func (c *Config) NewEditor(filename, text string) *vim.State {
	s := vim.NewState(filename, text)
	s.Settings = c.Editor.Settings
	return s
}

// NewMux creates multiplexer state at the configured size
func (c *Config) NewMux(now time.Time) *mux.State {
	s := mux.NewState(c.Mux.Width, c.Mux.Height, now)
	if c.Mux.Mouse {
		s, _ = mux.SetMouse(s, true)
	}
	return s
}

// LogLevel returns the parsed host log level, falling back to info
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Host.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Encode writes the configuration as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
