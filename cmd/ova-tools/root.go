package main

import (
	"log/slog"
	"os"

	"github.com/example/go-ova-encode/internal/config"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var cfgFile string

	defaults := config.DefaultConfig()
	loaded := defaults

	cmd := &cobra.Command{
		Use:           "ova-tools",
		Short:         "Inspection, segmentation and decoding helpers for one-vs-all training files",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}

			loaded = cfg
			slog.SetDefault(config.NewLogger(os.Stderr, loaded.LogLevel))

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newSegmentCmd())
	cmd.AddCommand(newArgmaxCmd())
	cmd.AddCommand(newDecodeCmd(&loaded))

	return cmd
}
