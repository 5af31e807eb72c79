package library

import "strings"

// MultiDelimiter joins the values of a multi-valued field into the single
// string beets expects (a backslash followed by U+2400 SYMBOL FOR NULL).
const MultiDelimiter = "\\␀"

// Track is one item document from `beet edit`.
type Track struct {
	Album        string `yaml:"album"`
	AlbumArtist  string `yaml:"albumartist"`
	AlbumArtists string `yaml:"albumartists"`
	Artist       string `yaml:"artist"`
	Artists      string `yaml:"artists"`
	ID           int    `yaml:"id"`
	Title        string `yaml:"title"`
	Track        int    `yaml:"track"`
}

// Album is one album document from `beet edit -a`.
type Album struct {
	Album       string `yaml:"album"`
	AlbumArtist string `yaml:"albumartist"`
	ID          int    `yaml:"id"`
}

// TrackFields lists the keys every Track document must carry.
var TrackFields = []string{"album", "albumartist", "albumartists", "artist", "artists", "id", "title", "track"}

// AlbumFields lists the keys every Album document must carry.
var AlbumFields = []string{"album", "albumartist", "id"}

// JoinMulti renders values in the multi-valued field convention.
func JoinMulti(values []string) string {
	return strings.Join(values, MultiDelimiter)
}
