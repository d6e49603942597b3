package main

import (
	"context"
	"log/slog"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamiertop/docsite"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation site",
		Long: `serve loads the site config, renders every page under the content root and
serves them over HTTP. With --watch, edits to the content reload the site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := docsite.LoadConfig(configPath)
			if err != nil {
				return err
			}
			secure, _ := strconv.ParseBool(docsite.EnvOr("DOCSITE_COOKIE_SECURE", "false"))
			server := docsite.ServerConfig{
				Addr:          docsite.EnvOr("DOCSITE_ADDR", addr),
				DatabasePath:  docsite.EnvOr("DOCSITE_DB", "data/search.db"),
				SessionSecret: docsite.EnvOr("DOCSITE_SESSION_SECRET", ""),
				CookieSecure:  secure,
				Watch:         watch,
			}
			if cmd.Flags().Changed("addr") {
				server.Addr = addr
			}

			app := docsite.New(cfg, server, docsite.WithLogger(slog.Default()))
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			slog.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "docsite.yaml", "site config file")
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when content changes")
	return cmd
}
