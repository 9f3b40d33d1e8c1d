package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/mailer"
	"github.com/rxbridge/website-backend/internal/server"
	"github.com/rxbridge/website-backend/internal/version"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "rxbridge-server",
		Short:         "Backend for the RxBridge marketing website",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		logging.GetGlobalLogger().Error("%v", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			if err := logging.InitLogger(&logging.Config{
				Level:      strings.ToLower(cfg.LogLevel),
				File:       cfg.LogFile,
				MaxSize:    100, // MB
				MaxBackups: 3,
				MaxAge:     7, // days
			}); err != nil {
				return err
			}
			logger := logging.GetGlobalLogger()
			defer logger.Close()

			logger.Info("Starting rxbridge-server %s in %s mode", version.Get(), cfg.Environment)

			srv := server.New(cfg, mailer.NewSMTPMailer(cfg))

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				logger.Info("Received %s, shutting down", sig)
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				return <-errCh
			}
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "override the configured listen port")
	return cmd
}
