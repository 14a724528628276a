package prediction

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/carprice/chart"
	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/metrics"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// price = 10000 - 0.025 * km
var lineParams = model.Params{Theta0: 1.0, Theta1: -0.5, MaxMileage: 200000, MaxPrices: 10000}

func lineData() *dataset.Set {
	return dataset.New("line.csv", []dataset.Observation{
		{Mileage: 200000, Price: 5000},
		{Mileage: 100000, Price: 7500},
		{Mileage: 40000, Price: 9000},
		{Mileage: 0, Price: 10000},
	})
}

// captureWarnings はテスト中のerrors.Warnを収集する
func captureWarnings(t *testing.T) func() []error {
	t.Helper()

	var (
		mu       sync.Mutex
		warnings []error
	)
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })

	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), warnings...)
	}
}

func newTestPredictor(t *testing.T, params model.Params, data *dataset.Set) *Predictor {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelError)
	p, err := New(params, data, WithLogger(logger))
	require.NoError(t, err)
	return p
}

func TestPredict(t *testing.T) {
	warnings := captureWarnings(t)
	p := newTestPredictor(t, model.Params{Theta0: 0.1, Theta1: 0.9, MaxMileage: 200000, MaxPrices: 10000}, nil)

	assert.InDelta(t, 5500.0, p.Predict(100000), 1e-9)
	assert.Empty(t, warnings())
}

func TestPredictExtrapolation(t *testing.T) {
	warnings := captureWarnings(t)
	p := newTestPredictor(t, lineParams, nil)

	// 範囲外でも値を返す
	assert.InDelta(t, 10000-0.025*300000, p.Predict(300000), 1e-9)
	assert.True(t, p.Extrapolates(300000))
	assert.False(t, p.Extrapolates(200000))

	got := warnings()
	require.Len(t, got, 1)
	var extrapolation *errors.ExtrapolationWarning
	require.True(t, errors.As(got[0], &extrapolation))
	assert.Equal(t, 300000.0, extrapolation.Mileage)
	assert.Equal(t, 200000.0, extrapolation.MaxMileage)
}

func TestNewCrossCheck(t *testing.T) {
	warnings := captureWarnings(t)

	newTestPredictor(t, lineParams, lineData())
	assert.Empty(t, warnings())

	params := lineParams
	params.MaxMileage = 250000
	newTestPredictor(t, params, lineData())

	got := warnings()
	require.Len(t, got, 1)
	var mismatch *errors.RecordMismatchWarning
	require.True(t, errors.As(got[0], &mismatch))
	assert.Equal(t, "max_mileage", mismatch.Field)
	assert.Equal(t, 250000.0, mismatch.Recorded)
	assert.Equal(t, 200000.0, mismatch.Computed)
}

func TestPrecision(t *testing.T) {
	p := newTestPredictor(t, lineParams, lineData())

	report, err := p.Precision()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.R2, 1e-12)
	assert.Equal(t, metrics.QualityExcellent, report.Quality)
	assert.InDelta(t, 0.0, report.RMSE, 1e-9)
	assert.InDelta(t, 0.0, report.MAE, 1e-9)
}

func TestPrecisionImperfectFit(t *testing.T) {
	data := lineData()
	data.Observations[1].Price = 6500

	params := lineParams
	p := newTestPredictor(t, params, data)

	report, err := p.Precision()
	require.NoError(t, err)
	assert.Less(t, report.R2, 1.0)
	assert.InDelta(t, 1000/2.0, report.RMSE, 1e-9)
	assert.InDelta(t, 250.0, report.MAE, 1e-9)
	assert.Equal(t, metrics.Quality(report.R2), report.Quality)
}

func TestPrecisionErrors(t *testing.T) {
	_, err := newTestPredictor(t, lineParams, nil).Precision()
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	flat := dataset.New("flat.csv", []dataset.Observation{{Mileage: 1000, Price: 5000}, {Mileage: 2000, Price: 5000}})
	params := model.Params{Theta0: 1, Theta1: 0, MaxMileage: 2000, MaxPrices: 5000}
	_, err = newTestPredictor(t, params, flat).Precision()
	var degenerate *errors.DegenerateInputError
	assert.True(t, errors.As(err, &degenerate))
}

func TestPlot(t *testing.T) {
	p := newTestPredictor(t, lineParams, lineData())
	path := filepath.Join(t.TempDir(), "plot.png")

	require.NoError(t, p.Plot(context.Background(), path, chart.DefaultOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, model.Save(lineParams, modelPath))
	require.NoError(t, lineData().WriteFile(dataPath))

	logger, _ := log.NewTestLogger(log.LevelError)
	p, err := Load(modelPath, dataPath, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, lineParams, p.Params())
	assert.Equal(t, 4, p.Data().Len())
}

func TestLoadIncompleteRecord(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	record := `{"theta0": 0.1, "theta1": 0.9, "max_mileage": 200000}`
	require.NoError(t, os.WriteFile(modelPath, []byte(record), 0600))

	// データファイルより先にレコードが検証される
	_, err := Load(modelPath, filepath.Join(dir, "missing.csv"))
	var loadErr *errors.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, []string{"max_prices"}, loadErr.Missing)
}

func TestLoadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, model.Save(lineParams, modelPath))
	require.NoError(t, os.WriteFile(dataPath, []byte("km,value\n1,2\n"), 0600))

	_, err := Load(modelPath, dataPath)
	var schemaErr *errors.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestNewRejectsNonPositiveMaxima(t *testing.T) {
	tests := []struct {
		name   string
		params model.Params
	}{
		{"zero max_mileage", model.Params{Theta0: 0.1, Theta1: 0.9, MaxMileage: 0, MaxPrices: 10000}},
		{"negative max_mileage", model.Params{Theta0: 0.1, Theta1: 0.9, MaxMileage: -1, MaxPrices: 10000}},
		{"zero max_prices", model.Params{Theta0: 0.1, Theta1: 0.9, MaxMileage: 200000, MaxPrices: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.params, nil)
			assert.Nil(t, p)
			var degenerate *errors.DegenerateInputError
			assert.True(t, errors.As(err, &degenerate))
		})
	}
}

func TestLoadZeroMaxMileage(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	dataPath := filepath.Join(dir, "data.csv")
	record := `{"theta0": 0.1, "theta1": 0.9, "max_mileage": 0, "max_prices": 10000}`
	require.NoError(t, os.WriteFile(modelPath, []byte(record), 0600))
	require.NoError(t, lineData().WriteFile(dataPath))

	p, err := Load(modelPath, dataPath)
	assert.Nil(t, p)
	var degenerate *errors.DegenerateInputError
	require.True(t, errors.As(err, &degenerate))
	assert.Contains(t, err.Error(), "max_mileage")
}
