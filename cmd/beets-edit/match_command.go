package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"beetsedit/internal/library"
	"beetsedit/internal/rewrite"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <value>",
		Short: "Show which rule, if any, would rewrite a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artist, albumArtist, err := cfg.Matchers()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printMatch(out, "artist_rewrites", artist, args[0])
			printMatch(out, "albumartist_rewrites", albumArtist, args[0])
			return nil
		},
	}
}

func printMatch(out io.Writer, list string, matcher *rewrite.Matcher, value string) {
	match, ok := matcher.Find(value)
	if !ok {
		fmt.Fprintf(out, "%s: no match\n", list)
		return
	}
	fmt.Fprintf(out, "%s: rule %d, %s match on %s\n", list, match.RuleIndex+1, match.Kind(), strconv.Quote(match.Expression))
	if match.Rule.HasSingle() {
		fmt.Fprintf(out, "  single: %s\n", strconv.Quote(match.Rule.SingleValue()))
	}
	if match.Rule.HasMulti() {
		fmt.Fprintf(out, "  multi:  %s\n", strconv.Quote(library.JoinMulti(match.Rule.Multi)))
	}
	if match.Rule.Inert() {
		fmt.Fprintln(out, "  (no replacement configured)")
	}
}
