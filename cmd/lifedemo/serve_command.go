package main

import (
	"github.com/spf13/cobra"

	"lifedemo/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the render service in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			app, err := server.Build(cmd.Context(), cfg, ctx.logger(cfg), version)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
