package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lifedemo/internal/render"
)

func newFetchSampleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-sample",
		Short: "Download the sample clip into the assets directory if it is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := render.NewSampleStore(cfg.Render.AssetsDir, cfg.Render.SampleURL, nil, ctx.logger(cfg))

			stop := startSpinner("Fetching sample")
			path, err := store.Ensure(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			st, err := os.Stat(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKV([][2]string{
				{"Path", path},
				{"Size", humanize.Bytes(uint64(st.Size()))},
				{"Fetched", humanize.Time(st.ModTime())},
			}))
			return nil
		},
	}
}
