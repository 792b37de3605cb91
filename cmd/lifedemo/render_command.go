package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lifedemo/internal/render"
	"lifedemo/internal/server"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render one video locally without starting the server",
		Long: "Runs the same pipeline as POST /render in this process. The output stays in the\n" +
			"outputs directory; a running server sweeps it once it is older than the TTL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger(cfg)

			app, err := server.Build(cmd.Context(), cfg, log, version)
			if err != nil {
				return err
			}
			defer app.Janitor.Stop()

			stop := startSpinner("Rendering")
			res, err := app.Processor.Render(cmd.Context(), render.RenderRequest{})
			stop()
			if err != nil {
				return err
			}

			size := "?"
			if st, err := os.Stat(res.OutputPath); err == nil {
				size = humanize.Bytes(uint64(st.Size()))
			}
			share := "-"
			if res.TempURL != "" {
				share = res.TempURL
			}
			expires := "-"
			if !res.TempURLExpiresAt.IsZero() {
				expires = humanize.Time(res.TempURLExpiresAt)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKV([][2]string{
				{"ID", res.ID},
				{"File", res.OutputPath},
				{"Size", size},
				{"Share", share},
				{"Share expires", expires},
			}))
			return nil
		},
	}
}
