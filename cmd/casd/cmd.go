package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/njchilds90/gocas"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "casd",
		Short:        "Exact computer algebra over HTTP",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSchemaCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var cfgFile, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tool server",
		Long: `Start the HTTP tool server.

Endpoints:
  POST /tool    execute a tool call
  GET  /schema  tool schema for agent registration
  GET  /health  liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultServerConfig()
			if cfgFile != "" {
				var err error
				if cfg, err = loadServerConfig(cfgFile); err != nil {
					return err
				}
			}
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the tool schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), gocas.ToolSpec())
			return err
		},
	}
}

func serve(ctx context.Context, cfg ServerConfig) error {
	log := newLogger(cfg.Log, os.Stderr)
	engCfg := cfg.Engine
	engCfg.Logger = log.With("component", "engine")
	eng, err := gocas.New(engCfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(eng, log),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
