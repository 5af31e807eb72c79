package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"beetsedit/internal/config"
	"beetsedit/internal/library"
	"beetsedit/internal/rewrite"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample rules file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" && ctx.configFlag != nil {
				target = strings.TrimSpace(*ctx.configFlag)
			}
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample rules to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the rules file (defaults to --config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the rules file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if ctx.created {
				fmt.Fprintln(out, "Config file did not exist; a sample was written")
			}
			fmt.Fprintf(out, "Artist rules: %d\n", len(cfg.ArtistRewrites))
			fmt.Fprintf(out, "Album artist rules: %d\n", len(cfg.AlbumArtistRewrites))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the loaded rules as tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n\n", ctx.configPath)
			fmt.Fprintln(out, "artist_rewrites")
			fmt.Fprintln(out, renderRules(cfg.ArtistRewrites))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "albumartist_rewrites")
			fmt.Fprintln(out, renderRules(cfg.AlbumArtistRewrites))
			return nil
		},
	}
}

func renderRules(rules []rewrite.Rule) string {
	headers := []string{"#", "Expressions", "Single", "Multi"}
	rows := make([][]string, 0, len(rules))
	for i, rule := range rules {
		single := "-"
		if rule.HasSingle() {
			single = strconv.Quote(rule.SingleValue())
		}
		multi := "-"
		if rule.HasMulti() {
			multi = strconv.Quote(library.JoinMulti(rule.Multi))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strings.Join(rule.Expressions, "\n"),
			single,
			multi,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
}
