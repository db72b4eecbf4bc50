// Package main is themectl, a command-line editor for themeforge themes.
// It keeps a draft on disk and publishes through the server's HTTP API,
// using the same persistence bridge as the server's editor sessions.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

// version is set at build time.
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
