package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/carprice/chart"
	"github.com/YuminosukeSato/carprice/config"
	"github.com/YuminosukeSato/carprice/prediction"
)

var predictCmd = &cobra.Command{
	Use:               "predict",
	Short:             "estimate a price interactively from the saved parameters",
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

		p, err := prediction.Load(cfg.Model.Path, cfg.Data.Path, prediction.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Model loaded successfully.")
		fmt.Fprintln(cmd.OutOrStdout(), "Dataset loaded successfully.")

		session := prediction.NewSession(p, cmd.InOrStdin(), cmd.OutOrStdout(),
			prediction.WithPlot(cfg.Plot.Path, plotOptions(cfg.Plot)),
			prediction.WithSessionLogger(logger),
		)
		return session.Run(cmd.Context())
	},
}

func plotOptions(cfg config.PlotConfig) chart.Options {
	return chart.Options{
		Step:   cfg.Step,
		Width:  vg.Length(cfg.WidthInch) * vg.Inch,
		Height: vg.Length(cfg.HeightInch) * vg.Inch,
	}
}

func init() {
	predictCmd.Flags().String("plot", config.DefaultPlotPath, "where the regression plot is written")
}
