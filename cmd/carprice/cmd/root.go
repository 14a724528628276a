package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/carprice/config"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carprice",
	Short: "estimate a car price from its mileage",
	Long: `carprice fits a linear model of price against mileage with gradient descent
and answers price estimates from the saved parameters.

Train first, then predict:
  carprice train --data data.csv --model model.json
  carprice predict --model model.json`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultConfigFile+" if present)")
	flags.String("data", config.DefaultDataPath, "CSV file with km and price columns")
	flags.String("model", config.DefaultModelPath, "parameter record path")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.String("log-file", "", "also write JSON logs to this rotated file")

	rootCmd.AddCommand(trainCmd, predictCmd, versionCmd)
}

// loadConfig merges the config file, environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		Path:  cfgFile,
		Flags: cmd.Flags(),
	})
}

// setupLogger configures the process logger from cfg and returns its close func.
func setupLogger(cfg *config.Config, stderr io.Writer) (log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	logger, closeFn := log.Setup(log.Options{
		Level:      level,
		Console:    stderr,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	return logger, closeFn, nil
}
