package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/carprice/config"
	"github.com/YuminosukeSato/carprice/training"
)

var trainCmd = &cobra.Command{
	Use:               "train",
	Short:             "fit the model on the training CSV and save the parameters",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := setupLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeLog()

		result, err := training.Run(cmd.Context(), *cfg, logger, training.WithProgressWriter(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Training completed in %s\n", result.Duration)
		fmt.Fprintf(out, "theta0=%.6f theta1=%.6f cost=%.6f\n", result.Params.Theta0, result.Params.Theta1, result.Cost)
		fmt.Fprintf(out, "Model saved to %s\n", cfg.Model.Path)
		return nil
	},
}

func init() {
	flags := trainCmd.Flags()
	flags.Float64("learning-rate", config.DefaultLearningRate, "gradient descent step size")
	flags.Int("epochs", config.DefaultEpochs, "number of full-batch iterations")
	flags.Bool("progress", false, "show a progress bar over epochs")
}
