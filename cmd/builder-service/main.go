// Package main is the canon-builder entry point: an HTTP service that
// generates placeholder worldbuilding entities, plus a one-shot CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "builder-service",
		Short:         "Worldbuilding entity generator service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default: search ./configs)")
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newGenerateCmd(&configPath),
	)

	return rootCmd.ExecuteContext(ctx)
}
