package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solr-hybrid/searchgw/internal/config"
)

func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate the gateway's YAML config file without starting the server",
		RunE:  runValidateConfig,
	}
}

func runValidateConfig(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config %q is valid: collection %q, %d vector field(s)\n",
		configPath, cfg.Collection.CollectionName, len(cfg.Collection.VectorFields))
	return nil
}
