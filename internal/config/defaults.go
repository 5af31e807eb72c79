package config

import "beetsedit/internal/rewrite"

const (
	defaultBeetBinary = "beet"
	defaultLogFormat  = "auto"
)

// Default returns a Config with empty rule lists and stock settings.
func Default() Config {
	return Config{
		ArtistRewrites:      []rewrite.Rule{},
		AlbumArtistRewrites: []rewrite.Rule{},
		Beet: Beet{
			Binary: defaultBeetBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
		},
	}
}
