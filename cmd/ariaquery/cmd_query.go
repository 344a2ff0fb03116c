package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/internal/api/types"
	"github.com/pinchtab/ariaquery/query"
)

type queryFlags struct {
	url  string
	all  bool
	json bool
	html bool
}

func newQueryCmd(a *app) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "query [FILE]",
		Short: "Find elements by ARIA role, property or state",
		Long: "Find elements by ARIA role, property or state, optionally constrained by\n" +
			"accessible name. Without --all the first match is printed and a missing\n" +
			"match is an error.",
		Example: "  ariaquery query page.html --role button --name Save\n" +
			"  ariaquery query --url https://example.com --role link --all",
		Args: cobra.MaximumNArgs(1),
	}
	sf := addSpecFlags(cmd, true)
	f := cmd.Flags()
	f.StringVar(&flags.url, "url", "", "Capture a live page instead of reading FILE")
	f.BoolVar(&flags.all, "all", false, "Print every match")
	f.BoolVar(&flags.json, "json", false, "Print a JSON response")
	f.BoolVar(&flags.html, "html", false, "Print the outer HTML of each match")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		spec := sf.QuerySpec()
		q, err := spec.Query()
		if err != nil {
			return err
		}
		doc, err := a.load(cmd, args, flags.url)
		if err != nil {
			return err
		}

		resp := types.QueryResponse{Selector: aria.Compile(q), Matches: []types.Match{}}
		if _, err := query.Select(doc.Root(), resp.Selector); err != nil {
			return err
		}
		if flags.all {
			for n := range query.FindAll[dom.Node](doc.Root(), q, spec.Options()...) {
				resp.Matches = append(resp.Matches, types.NewMatch(n))
			}
		} else {
			n, err := query.Get[dom.Node](doc.Root(), q, spec.Options()...)
			if err != nil {
				return err
			}
			resp.Matches = append(resp.Matches, types.NewMatch(n))
		}
		resp.Count = len(resp.Matches)
		return printMatches(cmd.OutOrStdout(), resp, flags.json, flags.html)
	}
	return cmd
}

func printMatches(w io.Writer, resp types.QueryResponse, asJSON, withHTML bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	for _, m := range resp.Matches {
		if withHTML {
			fmt.Fprintln(w, m.HTML)
			continue
		}
		fmt.Fprintf(w, "%s\t%q\n", label(m), m.Name)
	}
	return nil
}

// label renders a match as tag#id.
func label(m types.Match) string {
	if m.ID == "" {
		return m.Tag
	}
	return m.Tag + "#" + m.ID
}
