package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"beetsedit/internal/beet"
	"beetsedit/internal/scan"
)

const lockFileName = "beets-edit.lock"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var keepGoing bool
	var dir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Edit every directory whose name matches an album artist rule",
		Long: "Scan a directory (the current one by default) and, for every entry whose name\n" +
			"matches an albumartist_rewrites rule, run `beet edit <name>/` and then\n" +
			"`beet edit -a <name>/` with beets-edit installed as the editor.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			_, albumArtist, err := cfg.Matchers()
			if err != nil {
				return err
			}

			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			client, err := beet.New(
				cfg.Beet.Binary,
				beet.EditorCommand(executable, editorArgs(ctx.verbosityLevel(), ctx.configPath)...),
				beet.WithTimeout(time.Duration(cfg.Beet.TimeoutSeconds)*time.Second),
				beet.WithEnv(runIDEnv+"="+ctx.currentRunID()),
				beet.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
				beet.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(dir)
			if target == "" {
				target, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve working directory: %w", err)
				}
			}

			scanner, err := scan.New(albumArtist, client, scan.Options{
				KeepGoing: keepGoing || cfg.Beet.KeepGoing,
				LockPath:  filepath.Join(filepath.Dir(ctx.configPath), lockFileName),
			}, logger)
			if err != nil {
				return err
			}

			summary, runErr := scanner.Run(cmd.Context(), target)
			printSummary(cmd, summary)
			return runErr
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue with the next entry after a failed edit")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan (default: current directory)")
	return cmd
}

// editorArgs forwards the caller's verbosity and rules file to the nested editor.
func editorArgs(verbosity int, configPath string) []string {
	var args []string
	if verbosity > 0 {
		args = append(args, "-"+strings.Repeat("v", verbosity))
	}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return args
}

func printSummary(cmd *cobra.Command, summary scan.Summary) {
	if summary.Entries == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanned %d entries: %d matched, %d edited, %d failed\n",
		summary.Entries, len(summary.Matched), len(summary.Edited), len(summary.Failed))
	for _, name := range summary.Failed {
		fmt.Fprintf(out, "  failed: %s\n", name)
	}
}
