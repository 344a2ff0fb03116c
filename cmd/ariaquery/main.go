package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/internal/browser"
	"github.com/pinchtab/ariaquery/internal/config"
	"github.com/pinchtab/ariaquery/internal/server"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries state shared by every sub-command.
type app struct {
	cfg     *config.RuntimeConfig
	capture server.CaptureFunc
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ariaquery",
		Short: "Query HTML documents by ARIA role, property, state and accessible name",
		Long: "ariaquery compiles ARIA semantic queries into selectors, computes accessible\n" +
			"names, and runs queries against HTML files, live pages, or a long-running server.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.cfg = config.Load()
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: a.cfg.SlogLevel(),
			})))
		},
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newNameCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newSnapshotCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

func main() {
	root := newRootCmd(&app{capture: browser.Capture})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ariaquery:", err)
		os.Exit(1)
	}
}
