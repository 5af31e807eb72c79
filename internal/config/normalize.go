package config

import (
	"fmt"
	"strings"

	"beetsedit/internal/rewrite"
)

func (c *Config) normalize() error {
	if c.ArtistRewrites == nil {
		c.ArtistRewrites = []rewrite.Rule{}
	}
	if c.AlbumArtistRewrites == nil {
		c.AlbumArtistRewrites = []rewrite.Rule{}
	}

	c.Beet.Binary = strings.TrimSpace(c.Beet.Binary)
	if c.Beet.Binary == "" {
		c.Beet.Binary = defaultBeetBinary
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
