package main

import (
	"github.com/spf13/cobra"

	"beetsedit/internal/edit"
)

func newEditTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit-tracks <path>",
		Short: "Rewrite artist fields in a beets track edit file",
		Long: "Rewrite artist and album artist fields of every track document in the YAML\n" +
			"file beets hands to its editor. Intended as the EDITOR for `beet edit`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeLog, err := newFileEditor(cmd, ctx)
			if err != nil {
				return err
			}
			defer closeLog()
			_, err = editor.Tracks(args[0])
			return err
		},
	}
}

func newEditAlbumCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit-album <path>",
		Short: "Rewrite the album artist in a beets album edit file",
		Long: "Rewrite the albumartist field of every album document in the YAML\n" +
			"file beets hands to its editor. Intended as the EDITOR for `beet edit -a`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeLog, err := newFileEditor(cmd, ctx)
			if err != nil {
				return err
			}
			defer closeLog()
			_, err = editor.Albums(args[0])
			return err
		},
	}
}

func newFileEditor(cmd *cobra.Command, ctx *commandContext) (*edit.Editor, func() error, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	artist, albumArtist, err := cfg.Matchers()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := ctx.newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	return edit.New(artist, albumArtist, logger), closeLog, nil
}
