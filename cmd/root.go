// Package cmd implements the newscrawl command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// cfgFile holds the --config flag value shared by all subcommands.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "newscrawl",
	Short: "A news-site crawler that extracts structured article content",
	Long: `newscrawl discovers article pages on news sites, extracts structured
content with per-site rules, and delivers the records to a configurable
sink (jsonl, kafka, mongo or elastic).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (optional, e.g. ./config.yml)")

	rootCmd.AddCommand(newCrawlCommand())
	rootCmd.AddCommand(newSourcesCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(*cobra.Command, []string) {
			fmt.Println("newscrawl version " + version)
		},
	})
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the run context;
// in-flight pages finish and their records are still delivered before the
// process exits.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
