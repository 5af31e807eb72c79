package edit

import (
	"context"
	"log/slog"

	"beetsedit/internal/document"
	"beetsedit/internal/library"
	"beetsedit/internal/logging"
	"beetsedit/internal/rewrite"
)

// Editor holds the compiled rule lists for one invocation.
type Editor struct {
	artist      *rewrite.Matcher
	albumArtist *rewrite.Matcher
	logger      *slog.Logger
}

// New builds an Editor. A nil matcher behaves like an empty rule list.
func New(artist, albumArtist *rewrite.Matcher, logger *slog.Logger) *Editor {
	return &Editor{
		artist:      artist,
		albumArtist: albumArtist,
		logger:      logging.NewComponentLogger(logger, "edit"),
	}
}

// Result reports which fields a rewrite changed on one record.
type Result struct {
	Artist       bool
	Artists      bool
	AlbumArtist  bool
	AlbumArtists bool
}

// Changed reports whether any field was written.
func (r Result) Changed() bool {
	return r.Artist || r.Artists || r.AlbumArtist || r.AlbumArtists
}

// Stats summarizes one file edit.
type Stats struct {
	Records   int
	Rewritten int
}

// ApplyTrack rewrites the artist fields from the artist rules and the album
// artist fields from the album-artist rules. The two lookups are independent.
func (e *Editor) ApplyTrack(track *library.Track) Result {
	var result Result
	e.logger.Log(context.Background(), logging.LevelTrace, "track loaded", logging.Any("track", *track))

	if match, ok := e.artist.Find(track.Artist); ok {
		e.logMatch("track", "artist", track.Artist, track.ID, match)
		if match.Rule.HasSingle() {
			track.Artist = match.Rule.SingleValue()
			result.Artist = true
		}
		if match.Rule.HasMulti() {
			track.Artists = library.JoinMulti(match.Rule.Multi)
			result.Artists = true
		}
	}

	if match, ok := e.albumArtist.Find(track.AlbumArtist); ok {
		e.logMatch("track", "albumartist", track.AlbumArtist, track.ID, match)
		if match.Rule.HasSingle() {
			track.AlbumArtist = match.Rule.SingleValue()
			result.AlbumArtist = true
		}
		if match.Rule.HasMulti() {
			track.AlbumArtists = library.JoinMulti(match.Rule.Multi)
			result.AlbumArtists = true
		}
	}
	return result
}

// ApplyAlbum rewrites the album artist from the album-artist rules. Albums have
// no plural album-artist field, so only Single values apply.
func (e *Editor) ApplyAlbum(album *library.Album) Result {
	var result Result
	e.logger.Log(context.Background(), logging.LevelTrace, "album loaded", logging.Any("album", *album))

	if match, ok := e.albumArtist.Find(album.AlbumArtist); ok {
		e.logMatch("album", "albumartist", album.AlbumArtist, album.ID, match)
		if match.Rule.HasSingle() {
			album.AlbumArtist = match.Rule.SingleValue()
			result.AlbumArtist = true
		}
	}
	return result
}

// Tracks rewrites a `beet edit` temporary file in place.
func (e *Editor) Tracks(path string) (Stats, error) {
	var stats Stats
	count, err := document.Edit(path, library.TrackFields, func(track *library.Track) error {
		if e.ApplyTrack(track).Changed() {
			stats.Rewritten++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	stats.Records = count
	e.logger.Info("tracks rewritten",
		logging.String("path", path),
		logging.Int("records", stats.Records),
		logging.Int("rewritten", stats.Rewritten),
	)
	return stats, nil
}

// Albums rewrites a `beet edit -a` temporary file in place.
func (e *Editor) Albums(path string) (Stats, error) {
	var stats Stats
	count, err := document.Edit(path, library.AlbumFields, func(album *library.Album) error {
		if e.ApplyAlbum(album).Changed() {
			stats.Rewritten++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	stats.Records = count
	e.logger.Info("albums rewritten",
		logging.String("path", path),
		logging.Int("records", stats.Records),
		logging.Int("rewritten", stats.Rewritten),
	)
	return stats, nil
}

func (e *Editor) logMatch(record, field, value string, id int, match rewrite.Match) {
	e.logger.Info("rewrite matched",
		logging.String("record", record),
		logging.Int("id", id),
		logging.String("field", field),
		logging.String("value", value),
		logging.String("expression", match.Expression),
		logging.String("match", match.Kind()),
		logging.Int("rule", match.RuleIndex+1),
	)
}
