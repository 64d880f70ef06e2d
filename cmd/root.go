// Package cmd implements the command-line interface for aquacrawl. It
// provides the root command and subcommands for crawling, processing, and
// scheduling.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aquanets/aquacrawl/cmd/common"
	"github.com/aquanets/aquacrawl/cmd/crawl"
	"github.com/aquanets/aquacrawl/cmd/pipeline"
	"github.com/aquanets/aquacrawl/cmd/process"
	"github.com/aquanets/aquacrawl/cmd/schedule"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "aquacrawl",
	Short: "A domain crawler and text pipeline for Vietnamese aquaculture articles",
	Long: `aquacrawl crawls Vietnamese aquaculture news sites for shrimp farming
articles and processes them into normalized, chunked documents ready for
downstream indexing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command under a signal-aware context.
func Execute() error {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&common.ConfigFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(
		&common.Debug, "debug", false,
		"enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("aquacrawl version %s\n", version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(process.Command())
	rootCmd.AddCommand(pipeline.Command())
	rootCmd.AddCommand(schedule.Command())
}
