package config

import (
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

type Config struct {
	// Training data.
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Parameter record.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Gradient descent.
	Train TrainConfig `yaml:"train" mapstructure:"train"`

	// Regression plot.
	Plot PlotConfig `yaml:"plot" mapstructure:"plot"`

	// Logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type DataConfig struct {
	// Path of the CSV file with km and price columns.
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

type ModelConfig struct {
	// Path of the JSON parameter record.
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

type TrainConfig struct {
	// LearningRate is the gradient descent step size.
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate" validate:"gt=0"`

	// Epochs is the number of full-batch iterations.
	Epochs int `yaml:"epochs" mapstructure:"epochs" validate:"gt=0"`

	// Progress renders a progress bar over epochs.
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

type PlotConfig struct {
	// Path of the rendered image.
	Path string `yaml:"path" mapstructure:"path" validate:"required"`

	// Step is the mileage spacing of the sampled line.
	Step float64 `yaml:"step" mapstructure:"step" validate:"gt=0"`

	// WidthInch and HeightInch are the figure size.
	WidthInch  float64 `yaml:"widthInch" mapstructure:"widthInch" validate:"gt=0"`
	HeightInch float64 `yaml:"heightInch" mapstructure:"heightInch" validate:"gt=0"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// File enables a rotated JSON log file.
	File string `yaml:"file" mapstructure:"file"`

	// Rotation of File.
	MaxSizeMB  int `yaml:"maxSizeMB" mapstructure:"maxSizeMB" validate:"gte=0"`
	MaxBackups int `yaml:"maxBackups" mapstructure:"maxBackups" validate:"gte=0"`
	MaxAgeDays int `yaml:"maxAgeDays" mapstructure:"maxAgeDays" validate:"gte=0"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Data: DataConfig{
			Path: DefaultDataPath,
		},
		Model: ModelConfig{
			Path: DefaultModelPath,
		},
		Train: TrainConfig{
			LearningRate: DefaultLearningRate,
			Epochs:       DefaultEpochs,
		},
		Plot: PlotConfig{
			Path:       DefaultPlotPath,
			Step:       DefaultPlotStep,
			WidthInch:  DefaultPlotWidthInch,
			HeightInch: DefaultPlotHeightInch,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

var validate = validator.New()

// Validate config parameters.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(strings.TrimPrefix(fe.Namespace(), "Config."), "failed '"+fe.Tag()+"' check", fe.Value())
	}
	return errors.Wrap(err, "carprice: validate config")
}

// Write encodes cfg as YAML.
func (cfg *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "carprice: encode config")
	}
	return enc.Close()
}

// FlagKeys maps command line flags to configuration keys.
var FlagKeys = map[string]string{
	"data":          "data.path",
	"model":         "model.path",
	"learning-rate": "train.learningRate",
	"epochs":        "train.epochs",
	"progress":      "train.progress",
	"plot":          "plot.path",
	"log-level":     "log.level",
	"log-file":      "log.file",
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path of a YAML file. Empty means DefaultConfigFile, which may be absent.
	Path string

	// Flags are bound through FlagKeys. Unknown flags are skipped.
	Flags *pflag.FlagSet
}

// Load merges defaults, the YAML file, CARPRICE_* environment variables and
// flags, in increasing priority, then validates the result.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	if opts.Flags != nil {
		for flag, key := range FlagKeys {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "carprice: bind flag %q", flag)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts.Path); err != nil {
		return nil, err
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "carprice: unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfigFile reads the YAML file into v. A missing default file is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "carprice: read config %q", path)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data.path", cfg.Data.Path)
	v.SetDefault("model.path", cfg.Model.Path)
	v.SetDefault("train.learningRate", cfg.Train.LearningRate)
	v.SetDefault("train.epochs", cfg.Train.Epochs)
	v.SetDefault("train.progress", cfg.Train.Progress)
	v.SetDefault("plot.path", cfg.Plot.Path)
	v.SetDefault("plot.step", cfg.Plot.Step)
	v.SetDefault("plot.widthInch", cfg.Plot.WidthInch)
	v.SetDefault("plot.heightInch", cfg.Plot.HeightInch)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.maxSizeMB", cfg.Log.MaxSizeMB)
	v.SetDefault("log.maxBackups", cfg.Log.MaxBackups)
	v.SetDefault("log.maxAgeDays", cfg.Log.MaxAgeDays)
}
