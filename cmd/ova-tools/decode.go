package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-ova-encode/internal/classify"
	"github.com/example/go-ova-encode/internal/config"
	"github.com/spf13/cobra"
)

func newArgmaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "argmax",
		Short: "Decode network output vectors from stdin into label characters",
		Long: `Reads one network output vector per line from stdin and prints the label
character of the highest value for each. Lines with too few numeric values are
skipped. Characters are printed without separators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			n, err := classify.Stream(cmd.Context(), classify.Identity{}, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			slog.Debug("decoded outputs", "labels", n)
			return nil
		},
	}
}

type decodeOptions struct {
	model      string
	inputName  string
	outputName string
}

func newDecodeCmd(cfg *config.Config) *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode --model <classifier.onnx>",
		Short: "Classify feature vectors from stdin with an ONNX network",
		Long: `Reads one feature vector per line from stdin (for example the CODED FEATURES
lines printed by "segment"), scores each with the ONNX classifier and prints
the label character of the highest score. Lines with too few numeric values
are skipped. Characters are printed without separators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			libPath, err := classify.DetectLibrary(cfg.Runtime)
			if err != nil {
				return err
			}

			runner, err := classify.NewRunner(classify.RunnerConfig{
				LibraryPath: libPath,
				APIVersion:  uint32(cfg.Runtime.ORTAPIVersion),
				ModelPath:   opts.model,
				InputName:   opts.inputName,
				OutputName:  opts.outputName,
			})
			if err != nil {
				return fmt.Errorf("load classifier: %w", err)
			}
			defer runner.Close()

			n, err := classify.Stream(cmd.Context(), runner, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			slog.Debug("classified feature vectors", "labels", n, "model", opts.model)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "Path to the ONNX classifier")
	cmd.Flags().StringVar(&opts.inputName, "input-name", "input", "Graph input fed with the [1, n] feature tensor")
	cmd.Flags().StringVar(&opts.outputName, "output-name", "", "Graph output holding the class scores (default: the only output)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
