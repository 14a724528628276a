// Package prediction answers price queries from a saved parameter record and
// drives the interactive estimate session.
package prediction

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/carprice/chart"
	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/linear"
	"github.com/YuminosukeSato/carprice/metrics"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
	"github.com/YuminosukeSato/carprice/preprocessing"
)

// PrecisionReport is the fit quality over the training observations.
type PrecisionReport struct {
	R2      float64
	Quality string
	RMSE    float64
	MAE     float64
}

// Predictor applies a parameter record to raw mileages.
type Predictor struct {
	params        model.Params
	mileageScaler *preprocessing.MaxScaler
	priceScaler   *preprocessing.MaxScaler
	data          *dataset.Set
	logger        log.Logger
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithLogger sets the logger. Defaults to log.GetLogger().
func WithLogger(logger log.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

// Load reads the parameter record and the observation CSV, in that order.
// A broken record is reported before the data is touched.
func Load(modelPath, dataPath string, opts ...Option) (*Predictor, error) {
	params, err := model.Load(modelPath)
	if err != nil {
		return nil, err
	}
	data, err := dataset.LoadFile(dataPath)
	if err != nil {
		return nil, err
	}
	return New(params, data, opts...)
}

// New creates a Predictor. data may be nil, in which case Precision and Plot
// are unavailable. When data is present its column maxima are compared with
// the record and any difference is raised as a warning.
// Both maxima must be strictly positive; otherwise a DegenerateInputError is
// returned.
func New(params model.Params, data *dataset.Set, opts ...Option) (*Predictor, error) {
	mileageScaler, err := preprocessing.NewFittedMaxScaler(params.MaxMileage)
	if err != nil {
		return nil, errors.Wrap(err, "carprice: invalid max_mileage in parameter record")
	}
	priceScaler, err := preprocessing.NewFittedMaxScaler(params.MaxPrices)
	if err != nil {
		return nil, errors.Wrap(err, "carprice: invalid max_prices in parameter record")
	}

	p := &Predictor{
		params:        params,
		mileageScaler: mileageScaler,
		priceScaler:   priceScaler,
		data:          data,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLogger()
	}
	p.logger = p.logger.With(log.ComponentKey, "prediction")

	if data != nil && data.Len() > 0 {
		p.crossCheck()
	}

	p.logger.Debug("Predictor ready",
		log.OperationKey, log.OperationLoad,
		log.Theta0Key, params.Theta0,
		log.Theta1Key, params.Theta1,
	)
	return p, nil
}

func (p *Predictor) crossCheck() {
	if computed := floats.Max(p.data.Mileages()); computed != p.params.MaxMileage {
		errors.Warn(errors.NewRecordMismatchWarning("max_mileage", p.params.MaxMileage, computed))
	}
	if computed := floats.Max(p.data.Prices()); computed != p.params.MaxPrices {
		errors.Warn(errors.NewRecordMismatchWarning("max_prices", p.params.MaxPrices, computed))
	}
}

// Params returns the record in use.
func (p *Predictor) Params() model.Params {
	return p.params
}

// Data returns the observations the predictor was created with, possibly nil.
func (p *Predictor) Data() *dataset.Set {
	return p.data
}

// Predict returns the estimated price for a raw mileage. Mileages above the
// training maximum are still answered, with an ExtrapolationWarning raised.
func (p *Predictor) Predict(mileage float64) float64 {
	if p.Extrapolates(mileage) {
		errors.Warn(errors.NewExtrapolationWarning(mileage, p.params.MaxMileage))
	}

	price := p.estimate(mileage)
	p.logger.Debug("Price estimated",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.MileageKey, mileage,
		log.PriceKey, price,
	)
	return price
}

func (p *Predictor) estimate(mileage float64) float64 {
	normalized := preprocessing.Normalize(mileage, p.mileageScaler.Max)
	return preprocessing.Denormalize(linear.Estimate(normalized, p.params.Theta0, p.params.Theta1), p.priceScaler.Max)
}

// Extrapolates reports whether mileage lies beyond the training range.
func (p *Predictor) Extrapolates(mileage float64) bool {
	return mileage > p.params.MaxMileage
}

// Precision scores the record against every observation.
func (p *Predictor) Precision() (PrecisionReport, error) {
	if p.data == nil || p.data.Len() == 0 {
		return PrecisionReport{}, errors.NewModelError("Predictor.Precision", "no observations", errors.ErrEmptyData)
	}

	n := p.data.Len()
	yTrue := mat.NewVecDense(n, p.data.Prices())
	yPred := mat.NewVecDense(n, nil)
	for i, o := range p.data.Observations {
		yPred.SetVec(i, p.estimate(o.Mileage))
	}

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return PrecisionReport{}, err
	}
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return PrecisionReport{}, err
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return PrecisionReport{}, err
	}

	report := PrecisionReport{
		R2:      r2,
		Quality: metrics.Quality(r2),
		RMSE:    rmse,
		MAE:     mae,
	}
	p.logger.Info("Precision computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, n,
		log.R2ScoreKey, r2,
	)
	return report, nil
}

// Plot writes the regression figure to path.
func (p *Predictor) Plot(ctx context.Context, path string, opts chart.Options) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "carprice: plot cancelled")
	}
	if err := chart.Save(p.params, p.data, path, opts); err != nil {
		return err
	}
	p.logger.Info("Plot saved",
		log.OperationKey, log.OperationPlot,
		log.SourceKey, path,
	)
	return nil
}
