package main

import (
	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/internal/api/types"
	"github.com/pinchtab/ariaquery/query"
)

type nameFlags struct {
	url      string
	selector string
	json     bool
}

func newNameCmd(a *app) *cobra.Command {
	var flags nameFlags
	cmd := &cobra.Command{
		Use:     "name [FILE]",
		Short:   "Print the accessible names of elements matching a selector",
		Example: "  ariaquery name page.html --selector 'input,button'",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args, flags.url)
			if err != nil {
				return err
			}
			seq, err := query.Select(doc.Root(), flags.selector)
			if err != nil {
				return err
			}
			resp := types.QueryResponse{Selector: flags.selector, Matches: []types.Match{}}
			for n := range seq {
				resp.Matches = append(resp.Matches, types.NewMatch(n))
			}
			resp.Count = len(resp.Matches)
			return printMatches(cmd.OutOrStdout(), resp, flags.json, false)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.url, "url", "", "Capture a live page instead of reading FILE")
	f.StringVarP(&flags.selector, "selector", "s", "", "CSS selector (required)")
	f.BoolVar(&flags.json, "json", false, "Print a JSON response")
	_ = cmd.MarkFlagRequired("selector")
	return cmd
}
