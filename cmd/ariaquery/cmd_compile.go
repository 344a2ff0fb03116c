package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/aria"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the selector for an ARIA query",
		Example: "  ariaquery compile --role checkbox\n" +
			"  ariaquery compile --state disabled --value true",
		Args: cobra.NoArgs,
	}
	sf := addSpecFlags(cmd, false)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		q, err := sf.QuerySpec().Query()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), aria.Compile(q))
		return nil
	}
	return cmd
}
