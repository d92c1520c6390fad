package main

import (
	"context"

	"github.com/desertthunder/pbin/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the paste API and share pages until the context is cancelled.
//
// Overriding --host or --port without --base-url derives share links from the new address.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
		cfg.BaseURL = ""
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
		cfg.BaseURL = ""
	}
	if cmd.IsSet("base-url") {
		cfg.BaseURL = cmd.String("base-url")
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	logger := r.logger.With("component", "server")
	srv := server.NewServer(cfg.Addr(), server.NewRouter(s, cfg.Origin(), logger), logger)

	logger.Info("share links", "origin", cfg.Origin())
	return srv.ListenAndServe(ctx)
}
