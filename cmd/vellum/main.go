package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vellum",
		Short: "Server-rendered UI components for Go",
		Long: `Vellum renders component trees to HTML on the server and ships
minimal patches to the browser over WebSocket.

Features:
  • Virtual DOM with positional diffing
  • Component lifecycle with hooks
  • Bounded render cache (TTL + LRU + memory)
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
