package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type checkFlags struct {
	parallel int
}

func newCheckCmd(a *app) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check SUITE.yaml",
		Short: "Run a YAML suite of accessibility assertions",
		Long: "Run a YAML suite of accessibility assertions. Cases run in parallel and\n" +
			"the command exits non-zero when any case fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := ReadSuite(args[0])
			if err != nil {
				return err
			}
			parallel := a.cfg.Parallel
			if flags.parallel > 0 {
				parallel = flags.parallel
			}

			start := time.Now()
			results := runSuite(cmd.Context(), suite, parallel, a.caseLoader(filepath.Dir(args[0])))
			slog.Debug("suite finished", "cases", len(results), "parallel", parallel, "elapsed", time.Since(start))

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					fmt.Fprintf(out, "ERROR %s: %v\n", r.Name, r.Err)
				case len(r.Failures) > 0:
					failed++
					fmt.Fprintf(out, "FAIL  %s\n      %s\n", r.Name, strings.Join(r.Failures, "\n      "))
				default:
					fmt.Fprintf(out, "PASS  %s\n", r.Name)
				}
			}
			fmt.Fprintf(out, "\n%d passed, %d failed\n", len(results)-failed, failed)
			if failed > 0 {
				return errChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", 0, "Cases in flight (default from config)")
	return cmd
}
