package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"beetsedit/internal/rewrite"
)

//go:embed sample_rename.yml
var sampleConfig string

// Beet configures how `run` drives the beets CLI.
type Beet struct {
	Binary         string `yaml:"binary,omitempty" toml:"binary"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds"`
	KeepGoing      bool   `yaml:"keep_going,omitempty" toml:"keep_going"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `yaml:"format,omitempty" toml:"format"`
	File   string `yaml:"file,omitempty" toml:"file"`
}

// Config is the full rules file.
type Config struct {
	ArtistRewrites      []rewrite.Rule `yaml:"artist_rewrites" toml:"artist_rewrites"`
	AlbumArtistRewrites []rewrite.Rule `yaml:"albumartist_rewrites" toml:"albumartist_rewrites"`
	Beet                Beet           `yaml:"beet,omitempty" toml:"beet"`
	Logging             Logging        `yaml:"logging,omitempty" toml:"logging"`
}

// DefaultConfigPath returns <user config dir>/beets/rename.yml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config directory: %w", err)
	}
	return filepath.Join(dir, "beets", "rename.yml"), nil
}

// Load reads the rules file at path, or at DefaultConfigPath when path is
// empty. A missing file is created from the sample first. It returns the
// parsed config, the resolved path, and whether the file was created.
func Load(path string) (*Config, string, bool, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	created := false
	info, err := os.Stat(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := CreateSample(resolved); err != nil {
			return nil, "", false, err
		}
		created = true
	case err != nil:
		return nil, "", false, fmt.Errorf("stat config %s: %w", resolved, err)
	case info.IsDir():
		return nil, "", false, fmt.Errorf("config path %s is a directory", resolved)
	}

	cfg, err := parseFile(resolved)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, fmt.Errorf("config %s: %w", resolved, err)
	}
	return cfg, resolved, created, nil
}

func resolveConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return expandPath(strings.TrimSpace(path))
	}
	return DefaultConfigPath()
}

func parseFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	cfg := Default()
	if err := Decode(file, formatForPath(path), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Decode reads a rules document in the given format ("yaml" or "toml") into
// cfg. Unknown keys are rejected so typos in rule files surface early.
func Decode(r io.Reader, format string, cfg *Config) error {
	switch format {
	case "toml":
		decoder := toml.NewDecoder(r)
		decoder.DisallowUnknownFields()
		return decoder.Decode(cfg)
	default:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

func formatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// CreateSample writes the sample rules file to path, creating parent directories.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	sample := sampleConfig
	if formatForPath(path) == "toml" {
		sample = sampleTOML
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

const sampleTOML = `# beets-edit rewrite rules. See rename.yml for the field reference.
artist_rewrites = []
albumartist_rewrites = []
`

// Matchers compiles both rule lists.
func (c *Config) Matchers() (artist, albumArtist *rewrite.Matcher, err error) {
	artist, err = rewrite.Compile(c.ArtistRewrites)
	if err != nil {
		return nil, nil, fmt.Errorf("artist_rewrites: %w", err)
	}
	albumArtist, err = rewrite.Compile(c.AlbumArtistRewrites)
	if err != nil {
		return nil, nil, fmt.Errorf("albumartist_rewrites: %w", err)
	}
	return artist, albumArtist, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
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
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
