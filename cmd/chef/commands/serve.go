package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/pantry-chef/config"
	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/server"
	"github.com/pageza/pantry-chef/internal/tracer"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pantry-chef API server",
		Long:  `Start the recipe and image generation backend in this process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if err := config.ValidateConfig(cfg); err != nil {
				return err
			}

			logger.Init(cfg.Log.Level, cfg.Log.Format)

			shutdownTracer, err := tracer.Init(cmd.Context(), cfg.Tracing)
			if err != nil {
				return err
			}
			defer shutdownTracer(context.WithoutCancel(cmd.Context()))

			return server.New(cmd.Context(), cfg).Run(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 0, "port to listen on (overrides SERVER_PORT)")

	return cmd
}
