package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifedemo/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg and the working directories are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.RenderRequirements(cfg.Render.FFmpegPath))
			statuses = append(statuses,
				deps.CheckWritableDir("Assets dir", cfg.Render.AssetsDir),
				deps.CheckWritableDir("Outputs dir", cfg.Render.OutputsDir),
			)

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				if !s.Available {
					state = "missing"
					if s.Optional {
						state = "missing (optional)"
					}
				}
				location := s.Path
				if location == "" {
					location = s.Command
				}
				rows = append(rows, []string{s.Name, state, location, s.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Dependency", "Status", "Location", "Detail"}, rows))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependencies unavailable", len(missing))
			}
			return nil
		},
	}
}
