package document_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beetsedit/internal/document"
	"beetsedit/internal/library"
)

const twoTracks = `album: Hits
albumartist: Various Artists
albumartists: ""
artist: DJ Mixmaster
artists: ""
id: 11
title: Opener
track: 1
---
album: Hits
albumartist: Various Artists
albumartists: ""
artist: Someone
artists: ""
id: 12
title: Closer
track: 2
`

func TestDecodeTracksPreservesOrder(t *testing.T) {
	tracks, err := document.Decode[library.Track](strings.NewReader(twoTracks), library.TrackFields)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, 11, tracks[0].ID)
	assert.Equal(t, "DJ Mixmaster", tracks[0].Artist)
	assert.Equal(t, 12, tracks[1].ID)
	assert.Equal(t, 2, tracks[1].Track)
}

func TestDecodeRejectsMissingField(t *testing.T) {
	input := "album: A\nalbumartist: B\n"
	_, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrMissingField))
	assert.Contains(t, err.Error(), `"id"`)
	assert.Contains(t, err.Error(), "document 1")
}

func TestDecodeRejectsMalformedDocument(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 1\n---\nalbum: [unterminated\n"
	_, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 2")
}

func TestDecodeRejectsWrongType(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: not-a-number\n"
	_, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
}

func TestDecodeRejectsNonMapping(t *testing.T) {
	_, err := document.Decode[library.Album](strings.NewReader("- a\n- b\n"), library.AlbumFields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrNotMapping))
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 3\nyear: 1999\n"
	albums, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, 3, albums[0].ID)
}

func TestDecodeEmptyStream(t *testing.T) {
	albums, err := document.Decode[library.Album](strings.NewReader(""), library.AlbumFields)
	require.NoError(t, err)
	assert.Empty(t, albums)
}

func TestDecodeRejectsNullDocument(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 1\n---\n~\n---\nalbum: C\nalbumartist: D\nid: 2\n"
	albums, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
	assert.Nil(t, albums)
	assert.True(t, errors.Is(err, document.ErrEmptyDocument))
	assert.Contains(t, err.Error(), "document 2")
}

func TestDecodeRejectsBlankMiddleDocument(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 1\n---\n---\nalbum: C\nalbumartist: D\nid: 2\n"
	_, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrEmptyDocument))
	assert.Contains(t, err.Error(), "document 2")
}

func TestDecodeRejectsTrailingExplicitNull(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 1\n---\nnull\n"
	_, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrEmptyDocument))
}

func TestDecodeToleratesTrailingSeparator(t *testing.T) {
	input := "album: A\nalbumartist: B\nid: 1\n---\n"
	albums, err := document.Decode[library.Album](strings.NewReader(input), library.AlbumFields)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, 1, albums[0].ID)
}

func TestEncodeSingleAlbum(t *testing.T) {
	out, err := document.Encode([]library.Album{{Album: "X", AlbumArtist: "Foo", ID: 7}})
	require.NoError(t, err)
	assert.Equal(t, "album: X\nalbumartist: Foo\nid: 7\n", string(out))
}

func TestEncodeJoinsDocumentsWithSeparator(t *testing.T) {
	albums := []library.Album{
		{Album: "X", AlbumArtist: "Foo", ID: 1},
		{Album: "Y", AlbumArtist: "Bar", ID: 2},
	}
	out, err := document.Encode(albums)
	require.NoError(t, err)
	assert.Equal(t, "album: X\nalbumartist: Foo\nid: 1\n\n---\nalbum: Y\nalbumartist: Bar\nid: 2\n", string(out))
}

func TestEncodeNoRecords(t *testing.T) {
	out, err := document.Encode([]library.Track{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRoundTripIsIdentity(t *testing.T) {
	tracks := []library.Track{
		{Album: "A", AlbumArtist: "B", AlbumArtists: "B\\␀C", Artist: "D", Artists: "D", ID: 1, Title: "yes: no", Track: 3},
		{Album: "", AlbumArtist: "0123", Artist: "null", ID: 2, Title: "- dash", Track: 0},
		{Album: "Ünïcode", AlbumArtist: "'quoted'", Artist: "#hash", ID: 99999, Title: "line\nbreak", Track: 12},
	}
	out, err := document.Encode(tracks)
	require.NoError(t, err)

	back, err := document.Decode[library.Track](strings.NewReader(string(out)), library.TrackFields)
	require.NoError(t, err)
	assert.Equal(t, tracks, back)
}
