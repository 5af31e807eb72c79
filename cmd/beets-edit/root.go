package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var verbosity int
	var configFlag string

	ctx := newCommandContext(&verbosity, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "beets-edit",
		Short:         "Rewrite beets artist metadata by standing in as its editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Rules file path (default <config dir>/beets/rename.yml)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newEditTracksCommand(ctx))
	rootCmd.AddCommand(newEditAlbumCommand(ctx))
	rootCmd.AddCommand(newMatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
