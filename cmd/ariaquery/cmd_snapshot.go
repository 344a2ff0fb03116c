package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/internal/snapshot"
)

type snapshotFlags struct {
	url         string
	interactive bool
	format      string
	depth       int
	maxTokens   int
	scope       string
}

func newSnapshotCmd(a *app) *cobra.Command {
	var flags snapshotFlags
	cmd := &cobra.Command{
		Use:   "snapshot [FILE]",
		Short: "Print the accessibility tree of a document",
		Example: "  ariaquery snapshot page.html --interactive\n" +
			"  ariaquery snapshot --url https://example.com --format yaml --depth 3",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args, flags.url)
			if err != nil {
				return err
			}
			opts := snapshot.Options{MaxDepth: flags.depth, Scope: flags.scope}
			if flags.interactive {
				opts.Filter = snapshot.FilterInteractive
			}
			nodes, _, err := snapshot.Build(doc.Root(), opts)
			if err != nil {
				return err
			}
			if flags.maxTokens > 0 {
				var truncated bool
				nodes, truncated = snapshot.TruncateToTokens(nodes, flags.maxTokens, flags.format)
				if truncated {
					slog.Warn("snapshot truncated", "nodes", len(nodes), "maxTokens", flags.maxTokens)
				}
			}
			return snapshot.Encode(cmd.OutOrStdout(), nodes, flags.format)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.url, "url", "", "Capture a live page instead of reading FILE")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "Only interactive elements")
	f.StringVarP(&flags.format, "format", "f", snapshot.FormatText, "Output format: text, compact, json or yaml")
	f.IntVar(&flags.depth, "depth", -1, "Maximum depth, negative for unlimited")
	f.IntVar(&flags.maxTokens, "max-tokens", 0, "Truncate output to roughly this many tokens")
	f.StringVar(&flags.scope, "scope", "", "Only the subtree under the first element matching this selector")
	return cmd
}
