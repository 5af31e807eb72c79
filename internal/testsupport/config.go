package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"beetsedit/internal/config"
	"beetsedit/internal/rewrite"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig writes a rules file into a fresh temp directory and returns the
// config together with its path. It defaults to empty rule lists.
func NewConfig(t testing.TB, opts ...ConfigOption) (*config.Config, string) {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}

	path := filepath.Join(base, "beets", "rename.yml")
	WriteConfig(t, path, builder.cfg)
	return builder.cfg, path
}

// WithArtistRule appends a rule to artist_rewrites.
func WithArtistRule(rule rewrite.Rule) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ArtistRewrites = append(b.cfg.ArtistRewrites, rule)
	}
}

// WithAlbumArtistRule appends a rule to albumartist_rewrites.
func WithAlbumArtistRule(rule rewrite.Rule) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.AlbumArtistRewrites = append(b.cfg.AlbumArtistRewrites, rule)
	}
}

// WithBeetBinary overrides the beets executable.
func WithBeetBinary(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Beet.Binary = binary
	}
}

// WriteConfig serializes cfg as YAML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
