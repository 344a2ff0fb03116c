package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/api/types"
)

var errNoSource = errors.New("pass a FILE argument or --url, not both")

// load reads the document named by a FILE argument ("-" for stdin) or a
// --url captured through the browser.
func (a *app) load(cmd *cobra.Command, args []string, url string) (*htmltree.Document, error) {
	if (len(args) == 0) == (url == "") {
		return nil, errNoSource
	}
	if url != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.NavigateTimeout+a.cfg.ActionTimeout)
		defer cancel()
		return a.capture(ctx, a.cfg, url)
	}

	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	doc, err := htmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", args[0], err)
	}
	return doc, nil
}

// specFlags binds --role, --property, --state, --value and --name.
type specFlags struct {
	spec types.QuerySpec
	name string
	fs   *pflag.FlagSet
}

func addSpecFlags(cmd *cobra.Command, withName bool) *specFlags {
	sf := &specFlags{fs: cmd.Flags()}
	f := cmd.Flags()
	f.StringVar(&sf.spec.Role, "role", "", "ARIA role, e.g. button")
	f.StringVar(&sf.spec.Property, "property", "", "ARIA property without the aria- prefix, e.g. required")
	f.StringVar(&sf.spec.State, "state", "", "ARIA state without the aria- prefix, e.g. checked")
	f.StringVar(&sf.spec.Value, "value", "", "Property or state value")
	if withName {
		f.StringVar(&sf.name, "name", "", "Exact accessible name to match")
	}
	cmd.MarkFlagsMutuallyExclusive("role", "property", "state")
	cmd.MarkFlagsOneRequired("role", "property", "state")
	return sf
}

// QuerySpec returns the flags as a query, keeping an explicit empty --name.
func (sf *specFlags) QuerySpec() types.QuerySpec {
	spec := sf.spec
	if f := sf.fs.Lookup("name"); f != nil && f.Changed {
		name := sf.name
		spec.Name = &name
	}
	return spec
}
