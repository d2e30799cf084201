package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	legacychat "github.com/tymeless/legacychat"
	"github.com/tymeless/legacychat/config"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/internal/tracing"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "legacychatd",
		Short:        "Conversational legacy persona server",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newServeCmd(),
		newIngestCmd(),
		newProfileCmd(),
	)
	return cmd
}

// newApp builds the application shared by every subcommand.
func newApp(ctx context.Context, catalogDir string) (*legacychat.App, *mylog.Logger, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logConf, err := config.NewLogConfig(false)
	if err != nil {
		return nil, nil, err
	}
	logger := mylog.NewLogger(logConf.LogLevel, logConf.LogHandler)

	opts := []legacychat.Option{
		legacychat.WithLogger(logger),
	}
	if catalogDir != "" {
		opts = append(opts, legacychat.WithCatalogDir(catalogDir))
	}

	app, err := legacychat.New(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return app, logger, nil
}

func newServeCmd() *cobra.Command {
	params := &struct {
		Port       int
		CatalogDir string
		Verbose    bool
	}{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			app, logger, err := newApp(ctx, params.CatalogDir)
			if err != nil {
				return err
			}
			defer app.Close()

			shutdownTracing := tracing.Init(logger, params.Verbose)
			defer shutdownTracing(context.WithoutCancel(ctx))

			return serve(ctx, app, logger, fmt.Sprintf(":%d", params.Port))
		},
	}

	cmd.Flags().IntVarP(&params.Port, "port", "p", 3001, "Port to listen on")
	cmd.Flags().StringVar(&params.CatalogDir, "catalog-dir", "", "Directory of persona YAML files")
	cmd.Flags().BoolVarP(&params.Verbose, "verbose", "v", false, "Log full span attributes")
	return cmd
}
