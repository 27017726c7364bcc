package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	errwrap "github.com/citelens/citelens/internal/errors"
	"github.com/citelens/citelens/internal/observability"
	"github.com/citelens/citelens/internal/search"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long:  "Run a self-health check to verify the configuration is valid and the server can start.",
	Run: func(cmd *cobra.Command, args []string) {
		logger := observability.CLILogger
		if logger == nil {
			ExitWithCodeStderr(foundry.ExitConfigInvalid, "Logger not initialized", errwrap.NewConfigInvalidError("Logger not initialized"))
			return
		}
		logger.Info("Running health check...")

		if versionInfo.Version == "" {
			ExitWithCode(logger, foundry.ExitConfigInvalid, "Version information missing", errwrap.NewConfigInvalidError("Version information missing"))
			return
		}
		logger.Info("✅ Version information available", zap.String("version", versionInfo.Version))

		cfg := loadConfig()
		logger.Info("✅ Configuration valid")

		client, err := search.NewClient(search.ClientOptions{
			BaseURL:   cfg.Upstream.BaseURL,
			Timeout:   cfg.Upstream.Timeout,
			Mailto:    cfg.Upstream.Mailto,
			UserAgent: cfg.Upstream.UserAgent,
		})
		if err == nil {
			err = client.CheckHealth(cmd.Context())
		}
		if err != nil {
			ExitWithCode(logger, foundry.ExitConfigInvalid, "Upstream client misconfigured", err)
			return
		}
		logger.Info("✅ Upstream client ready", zap.String("base_url", client.BaseURL.String()))

		logger.Info("✅ All health checks passed")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
