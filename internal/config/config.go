package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
	LockFile  string `toml:"lock_file"`
}

// Encoder contains configuration for the external encoder invocations.
type Encoder struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	VideoBitrate  string `toml:"video_bitrate"`
	JPEGQuality   int    `toml:"jpeg_quality"`
}

// History contains configuration for the run-history store.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Run contains batch execution defaults.
type Run struct {
	AssumeYes bool `toml:"assume_yes"`
}

// Config encapsulates all tool settings for clipbatch.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Encoder Encoder `toml:"encoder"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
	Run     Run     `toml:"run"`
}

// Default returns the baseline configuration applied before any file is read.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    "~/.local/share/clipbatch/logs",
			HistoryDB: "~/.local/share/clipbatch/history.db",
			LockFile:  "~/.local/share/clipbatch/clipbatch.lock",
		},
		Encoder: Encoder{
			FFmpegBinary:  "ffmpeg",
			FFprobeBinary: "ffprobe",
			VideoBitrate:  "2000k",
			JPEGQuality:   2,
		},
		History: History{Enabled: true},
		Logging: Logging{Format: "console", Level: "info"},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipbatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second result is
// the resolved path, the third whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.LogDir, &c.Paths.HistoryDB, &c.Paths.LockFile} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}
	c.Encoder.FFmpegBinary = strings.TrimSpace(c.Encoder.FFmpegBinary)
	c.Encoder.FFprobeBinary = strings.TrimSpace(c.Encoder.FFprobeBinary)
	c.Encoder.VideoBitrate = strings.TrimSpace(c.Encoder.VideoBitrate)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Encoder.FFmpegBinary == "" {
		return errors.New("encoder.ffmpeg_binary must not be empty")
	}
	if c.Encoder.FFprobeBinary == "" {
		return errors.New("encoder.ffprobe_binary must not be empty")
	}
	if c.Encoder.JPEGQuality < 1 || c.Encoder.JPEGQuality > 31 {
		return fmt.Errorf("encoder.jpeg_quality %d outside 1..31", c.Encoder.JPEGQuality)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the directories the tool writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.HistoryDB), filepath.Dir(c.Paths.LockFile)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
