// Package training runs the offline pipeline that turns the observation CSV
// into a parameter record.
package training

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/YuminosukeSato/carprice/config"
	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/linear"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
	"github.com/YuminosukeSato/carprice/preprocessing"
)

// Result is what a training run produced.
type Result struct {
	Params   model.Params
	Cost     float64
	Summary  dataset.Summary
	Duration time.Duration
}

// Option customizes a run.
type Option func(*runner)

type runner struct {
	progressOut io.Writer
}

// WithProgressWriter sets where the epoch progress bar is drawn. Defaults to os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(r *runner) {
		r.progressOut = w
	}
}

// Run loads cfg.Data.Path, fits the model and writes the record to cfg.Model.Path.
// ctx is checked before fitting and before the record is written; the epoch
// loop itself runs to completion.
func Run(ctx context.Context, cfg config.Config, logger log.Logger, opts ...Option) (*Result, error) {
	start := time.Now()
	if logger == nil {
		logger = log.GetLogger()
	}
	logger = logger.With(log.ComponentKey, "training")

	set, err := dataset.LoadFile(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	result, err := Fit(ctx, set, cfg.Train, logger, opts...)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "carprice: training cancelled before saving")
	}
	if err := model.Save(result.Params, cfg.Model.Path); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	logger.Info("Model saved",
		log.OperationKey, log.OperationSave,
		log.SourceKey, cfg.Model.Path,
		log.DurationMsKey, result.Duration.Milliseconds(),
	)
	return result, nil
}

// Fit normalizes set, runs gradient descent and evaluates the final cost.
// Nothing is written to disk.
func Fit(ctx context.Context, set *dataset.Set, cfg config.TrainConfig, logger log.Logger, opts ...Option) (*Result, error) {
	start := time.Now()
	if logger == nil {
		logger = log.GetLogger()
	}
	r := &runner{progressOut: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	summary := set.Summary()
	logger.Info("Data loaded",
		log.PhaseKey, log.PhasePreprocessing,
		log.SourceKey, set.Source,
		log.SamplesKey, summary.Samples,
		log.MileageMinKey, summary.MileageMin,
		log.MileageMaxKey, summary.MileageMax,
		log.PriceMinKey, summary.PriceMin,
		log.PriceMaxKey, summary.PriceMax,
	)

	mileageScaler := preprocessing.NewMaxScaler()
	x, err := mileageScaler.FitTransform(set.Mileages())
	if err != nil {
		return nil, errors.Wrap(err, "carprice: normalize km")
	}
	priceScaler := preprocessing.NewMaxScaler()
	y, err := priceScaler.FitTransform(set.Prices())
	if err != nil {
		return nil, errors.Wrap(err, "carprice: normalize price")
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "carprice: training cancelled")
	}

	gdOpts := []linear.Option{
		linear.WithLearningRate(cfg.LearningRate),
		linear.WithEpochs(cfg.Epochs),
		linear.WithLogger(logger),
	}
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = newProgressBar(r.progressOut, cfg.Epochs)
		gdOpts = append(gdOpts, linear.WithCallback(func(linear.EpochInfo) {
			_ = bar.Add(1)
		}))
	}

	gd := linear.NewGradientDescent(gdOpts...)
	if err := gd.Fit(x, y); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	cost, err := linear.Cost(x, y, gd.Theta0(), gd.Theta1())
	if err != nil {
		return nil, err
	}
	params, err := gd.Params(mileageScaler.Max, priceScaler.Max)
	if err != nil {
		return nil, err
	}

	logger.Info("Final cost",
		log.PhaseKey, log.PhaseTraining,
		log.LossKey, cost,
		log.Theta0Key, params.Theta0,
		log.Theta1Key, params.Theta1,
	)

	return &Result{
		Params:   params,
		Cost:     cost,
		Summary:  summary,
		Duration: time.Since(start),
	}, nil
}

func newProgressBar(w io.Writer, epochs int) *progressbar.ProgressBar {
	return progressbar.NewOptions(epochs,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("training"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
