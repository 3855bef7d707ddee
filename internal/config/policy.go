// Package config decodes pipeline-wide configuration that is not itself
// part of the semantic core: diagnostic promotion/suppression policy and a
// handful of defaulting knobs. Configuration is always optional — a zero
// Config behaves exactly like diag.DefaultPolicy().
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"glint/internal/diag"
)

// Config is the decoded shape of a policy TOML document, e.g.:
//
//	max_diagnostics = 200
//	default_int_width = 64
//
//	[notes]
//	warning = "suppress"
//
//	[warnings]
//	resolution = "promote"
type Config struct {
	MaxDiagnostics   int               `toml:"max_diagnostics"`
	DefaultIntWidth  int               `toml:"default_int_width"`
	Notes            map[string]string `toml:"notes"`
	Warnings         map[string]string `toml:"warnings"`
}

// Load reads and decodes a policy file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// LoadBytes decodes a policy document already in memory.
func LoadBytes(data []byte) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.MaxDiagnostics == 0 {
		c.MaxDiagnostics = 1000
	}
	if c.DefaultIntWidth == 0 {
		c.DefaultIntWidth = 64
	}
	return c
}

// Exists reports whether path names a readable file, for callers deciding
// whether to fall back to diag.DefaultPolicy().
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var categoryByName = map[string]diag.Category{
	"structural": diag.CategoryStructural,
	"resolution": diag.CategoryResolution,
	"type":       diag.CategoryType,
	"warning":    diag.CategoryWarning,
	"internal":   diag.CategoryInternal,
}

var actionByName = map[string]diag.Action{
	"emit":      diag.ActionEmit,
	"promote":   diag.ActionPromoteToError,
	"suppress":  diag.ActionSuppress,
}

// Policy translates the decoded TOML tables into a diag.Policy. Unknown
// category or action names are ignored, leaving that category at the
// diag.ActionEmit default.
func (c Config) Policy() diag.Policy {
	p := diag.DefaultPolicy()
	if c.DefaultIntWidth != 0 {
		p.DefaultIntWidth = c.DefaultIntWidth
	}
	apply := func(table map[string]string, dst map[diag.Category]diag.Action) {
		for catName, actName := range table {
			cat, ok := categoryByName[catName]
			if !ok {
				continue
			}
			act, ok := actionByName[actName]
			if !ok {
				continue
			}
			dst[cat] = act
		}
	}
	apply(c.Notes, p.NoteLevel)
	apply(c.Warnings, p.WarningLevel)
	return p
}
