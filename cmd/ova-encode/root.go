package main

import (
	"log/slog"
	"os"

	"github.com/example/go-ova-encode/internal/config"
	"github.com/example/go-ova-encode/internal/transform"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var cfgFile string

	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "ova-encode <input_filename> <output_filename>",
		Short: "Expand the label lines of a training file into one-vs-all vectors",
		Long: `Reads a training file of alternating feature and label lines and writes a
copy where every label line (2nd, 4th, ...) is replaced by a vector of 1/-1
values marking the class of its first character ('0'..'z').`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			setupLogger(loaded.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			stats, err := transform.File(args[0], args[1])
			if err != nil {
				return err
			}

			slog.Info("encoded training file",
				"input", args[0],
				"output", args[1],
				"lines", stats.Lines,
				"records", stats.Records,
				"out_of_range", stats.OutOfRange,
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	slog.SetDefault(config.NewLogger(os.Stderr, levelStr))
}
