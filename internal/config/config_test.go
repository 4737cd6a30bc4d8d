package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Encoder.FFmpegBinary != "ffmpeg" || cfg.Encoder.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected encoder defaults: %+v", cfg.Encoder)
	}
	if !cfg.History.Enabled {
		t.Fatal("history should default to enabled")
	}
	if !filepath.IsAbs(cfg.Paths.HistoryDB) {
		t.Fatalf("history_db not expanded: %q", cfg.Paths.HistoryDB)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[encoder]
ffmpeg_binary = "/opt/ffmpeg/bin/ffmpeg"
jpeg_quality = 5

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected file to be read")
	}
	if cfg.Encoder.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("override lost: %q", cfg.Encoder.FFmpegBinary)
	}
	if cfg.Encoder.JPEGQuality != 5 {
		t.Fatalf("jpeg_quality = %d", cfg.Encoder.JPEGQuality)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	// Untouched sections keep defaults.
	if cfg.Encoder.FFprobeBinary != "ffprobe" {
		t.Fatalf("ffprobe default lost: %q", cfg.Encoder.FFprobeBinary)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Encoder.FFmpegBinary = "" },
		func(c *Config) { c.Encoder.JPEGQuality = 0 },
		func(c *Config) { c.Encoder.JPEGQuality = 99 },
		func(c *Config) { c.Logging.Format = "xml" },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[encoder]") {
		t.Fatal("sample missing encoder section")
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
