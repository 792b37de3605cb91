package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifedemo/internal/client"
)

func newRequestCommand() *cobra.Command {
	var serverURL string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Ask the render service for a new Life Demo video",
		Long: "Sends one POST /render and prints the playable URL. The share link is preferred;\n" +
			"the server's own download URL is used when no share link was produced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(serverURL) == "" {
				serverURL = client.ServerURLFromEnv()
			}
			c := client.New(serverURL, nil)

			stop := startSpinner("Rendering on " + c.BaseURL())
			res, err := c.Render(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			share := "-"
			if res.TempURL != nil && *res.TempURL != "" {
				share = *res.TempURL
			}
			fmt.Fprintln(out, renderKV([][2]string{
				{"ID", res.ID},
				{"Play", res.PlaybackURL()},
				{"Local", res.AbsoluteLocalURL},
				{"Share", share},
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Render service URL (defaults to LIFEDEMO_SERVER_URL or "+client.DefaultServerURL+")")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the raw JSON response")
	return cmd
}
