package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lifedemo/internal/config"
	"lifedemo/internal/pkg/logger"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "lifedemo",
		Short:         "Life Demo render CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (defaults to LIFEDEMO_CONFIG)")

	rootCmd.AddCommand(newRequestCommand())
	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newFetchSampleCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(strings.TrimSpace(*c.configFlag))
	})
	return c.config, c.configErr
}

// logger builds the command logger; local commands log to stderr as text.
func (c *commandContext) logger(cfg config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      "auto",
		Output:      stderrWriter,
		AddSource:   cfg.Log.Source,
		ServiceName: "lifedemo-cli",
	})
}
