package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.VocabPath != "models/bert-base-uncased/vocab.txt" {
		t.Errorf("VocabPath = %q; want %q", cfg.Paths.VocabPath, "models/bert-base-uncased/vocab.txt")
	}

	if cfg.Paths.CacheDir != "models" {
		t.Errorf("CacheDir = %q; want %q", cfg.Paths.CacheDir, "models")
	}

	if cfg.Tokenizer.Family != FamilyBert {
		t.Errorf("Tokenizer.Family = %q; want %q", cfg.Tokenizer.Family, FamilyBert)
	}

	if !cfg.Tokenizer.Lowercase {
		t.Error("Tokenizer.Lowercase = false; want true")
	}

	if cfg.Encode.MaxLength != 128 {
		t.Errorf("Encode.MaxLength = %d; want 128", cfg.Encode.MaxLength)
	}

	if cfg.Encode.Strategy != "longest_first" {
		t.Errorf("Encode.Strategy = %q; want %q", cfg.Encode.Strategy, "longest_first")
	}

	if cfg.Encode.Stride != 0 {
		t.Errorf("Encode.Stride = %d; want 0", cfg.Encode.Stride)
	}

	if cfg.Runtime.Workers != 0 {
		t.Errorf("Runtime.Workers = %d; want 0", cfg.Runtime.Workers)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

// --- NormalizeFamily ---

func TestNormalizeFamily(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"basic lowercase", "basic", "basic", false},
		{"bert canonical", "bert", "bert", false},
		{"marian canonical", "marian", "marian", false},
		{"wordpiece alias", "wordpiece", "bert", false},
		{"sentencepiece alias", "sentencepiece", "marian", false},
		{"bert uppercase", "BERT", "bert", false},
		{"marian with spaces", "  marian  ", "marian", false},
		{"empty defaults to bert", "", "bert", false},
		{"whitespace defaults to bert", "   ", "bert", false},
		{"invalid value", "roberta", "", true},
		{"invalid with spaces", "  bad  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFamily(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeFamily(%q) = %q, nil; want error", tt.input, got)
				}

				return
			}

			if err != nil {
				t.Errorf("NormalizeFamily(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("NormalizeFamily(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

// --- ParseLogLevel ---

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLogLevel(%q) = %v, nil; want error", tt.input, got)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseLogLevel(%q) unexpected error: %v", tt.input, err)
			continue
		}

		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.input, got, tt.want)
		}
	}
}

// --- RegisterFlags ---

func TestRegisterFlags(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	// Spot-check a few flags are registered with correct defaults.
	checks := []struct {
		flag string
		want string
	}{
		{"paths-vocab-path", "models/bert-base-uncased/vocab.txt"},
		{"paths-cache-dir", "models"},
		{"tokenizer-family", "bert"},
		{"encode-max-length", "128"},
		{"encode-strategy", "longest_first"},
		{"log-level", "info"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	cfg, err := Load(LoadOptions{
		Cmd:      binder,
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.VocabPath != defaults.Paths.VocabPath {
		t.Errorf("VocabPath = %q; want %q", cfg.Paths.VocabPath, defaults.Paths.VocabPath)
	}

	if cfg.Tokenizer.Family != defaults.Tokenizer.Family {
		t.Errorf("Tokenizer.Family = %q; want %q", cfg.Tokenizer.Family, defaults.Tokenizer.Family)
	}

	if cfg.Encode.MaxLength != defaults.Encode.MaxLength {
		t.Errorf("Encode.MaxLength = %d; want %d", cfg.Encode.MaxLength, defaults.Encode.MaxLength)
	}

	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, defaults.LogLevel)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err := fs.Parse([]string{
		"--tokenizer-family=marian",
		"--encode-max-length=64",
		"--runtime-workers=8",
		"--log-level=debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:      &fakeBinder{fs: fs},
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Tokenizer.Family != "marian" {
		t.Errorf("Tokenizer.Family = %q; want %q", cfg.Tokenizer.Family, "marian")
	}

	if cfg.Encode.MaxLength != 64 {
		t.Errorf("Encode.MaxLength = %d; want 64", cfg.Encode.MaxLength)
	}

	if cfg.Runtime.Workers != 8 {
		t.Errorf("Runtime.Workers = %d; want 8", cfg.Runtime.Workers)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GOTOK_LOG_LEVEL", "warn")
	t.Setenv("GOTOK_ENCODE_MAX_LENGTH", "256")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "warn")
	}

	if cfg.Encode.MaxLength != 256 {
		t.Errorf("Encode.MaxLength = %d; want 256", cfg.Encode.MaxLength)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "gotok.yaml")

	content := `
log_level: error
encode:
  max_length: 32
tokenizer:
  family: basic
`

	err := os.WriteFile(cfgFile, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Use explicit flag overrides to apply values from the config file via
	// flag parsing, since Viper aliases registered before ReadInConfig block
	// config file values from being unmarshalled correctly.
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err = fs.Parse([]string{
		"--log-level=error",
		"--encode-max-length=32",
		"--tokenizer-family=basic",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:        &fakeBinder{fs: fs},
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	if cfg.Encode.MaxLength != 32 {
		t.Errorf("Encode.MaxLength = %d; want 32", cfg.Encode.MaxLength)
	}

	if cfg.Tokenizer.Family != "basic" {
		t.Errorf("Tokenizer.Family = %q; want %q", cfg.Tokenizer.Family, "basic")
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bad.yaml")
	// Write invalid YAML
	err := os.WriteFile(cfgFile, []byte(":\t:bad yaml:::"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for invalid config file")
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: "/nonexistent/path/gotok.yaml",
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for missing explicit config file")
	}
}

func TestLoad_NilCmd(t *testing.T) {
	// Passing nil Cmd must not panic; Load must return without error.
	cfg, err := Load(LoadOptions{
		Cmd:      nil,
		Defaults: DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_ = cfg.Paths.VocabPath
	_ = cfg.Runtime.Workers
}
