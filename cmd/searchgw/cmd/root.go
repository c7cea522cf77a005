// Package cmd provides the CLI commands for searchgw.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solr-hybrid/searchgw/internal/gwlog"
	"github.com/solr-hybrid/searchgw/pkg/version"
)

var (
	configPath string
	debugMode  bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the searchgw CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "searchgw",
		Short:   "Hybrid lexical + semantic search gateway in front of Solr",
		Long:    `searchgw translates a structured search request into Solr query parameters, obtains query embeddings from an external embedding service, executes the Solr query, and maps the response back into a normalized result shape.`,
		Version: version.Version,
	}

	cmd.SetVersionTemplate("searchgw version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the gateway's YAML config file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to "+gwlog.DefaultLogPath())

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newValidateConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startLogging(_ *cobra.Command, _ []string) error {
	cfg := gwlog.DefaultConfig()
	if debugMode {
		cfg = gwlog.DebugConfig()
	}

	logger, cleanup, err := gwlog.Setup(cfg)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
