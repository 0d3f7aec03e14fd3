package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"customerapp/pkg/config"
)

var (
	envFile string
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "customerapp",
	Short:         "Customer registry HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the command line, defaulting to serve.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	rootCmd.RunE = serveCmd.RunE
}
