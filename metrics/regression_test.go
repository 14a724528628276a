package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // (0.25 * 4) / 4
			tolerance: 1e-10,
		},
		{
			name:      "price scale",
			yTrue:     mat.NewVecDense(3, []float64{3650, 5250, 8290}),
			yPred:     mat.NewVecDense(3, []float64{3550, 5350, 8290}),
			want:      20000.0 / 3.0,
			tolerance: 1e-9,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{10, 20, 30, 40})
	yPred := mat.NewVecDense(4, []float64{12, 18, 33, 36})

	rmse, err := RMSE(yTrue, yPred)
	require.NoError(t, err)
	// (4 + 4 + 9 + 16) / 4 = 8.25
	assert.InDelta(t, math.Sqrt(8.25), rmse, 1e-12)

	mae, err := MAE(yTrue, yPred)
	require.NoError(t, err)
	// (2 + 2 + 3 + 4) / 4
	assert.InDelta(t, 2.75, mae, 1e-12)

	_, err = MAE(yTrue, mat.NewVecDense(1, []float64{1}))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 4, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{3650, 5250, 6900, 8290},
			yPred: []float64{3650, 5250, 6900, 8290},
			want:  1.0,
		},
		{
			name:  "mean prediction",
			yTrue: []float64{1, 2, 3, 4, 5},
			yPred: []float64{3, 3, 3, 3, 3},
			want:  0.0,
		},
		{
			name:  "worse than mean",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{3, 2, 1},
			// RSS = 8, TSS = 2
			want: -3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.yTrue)
			got, err := R2Score(mat.NewVecDense(n, tt.yTrue), mat.NewVecDense(n, tt.yPred))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

// TestR2ScoreMatchesGonum はgonumのRSquaredFromと結果が一致することを確認する
func TestR2ScoreMatchesGonum(t *testing.T) {
	yTrue := []float64{3650, 3800, 4400, 4450, 5250, 5350, 5800, 5990, 5999, 6200}
	yPred := []float64{3927, 4568, 4500, 4278, 4339, 4730, 4397, 4895, 4541, 4927}

	got, err := R2Score(mat.NewVecDense(len(yTrue), yTrue), mat.NewVecDense(len(yPred), yPred))
	require.NoError(t, err)

	want := stat.RSquaredFrom(yPred, yTrue, nil)
	assert.InDelta(t, want, got, 1e-12)
}

func TestR2ScoreErrors(t *testing.T) {
	t.Run("zero variance", func(t *testing.T) {
		yTrue := mat.NewVecDense(3, []float64{5000, 5000, 5000})
		yPred := mat.NewVecDense(3, []float64{4900, 5000, 5100})

		_, err := R2Score(yTrue, yPred)
		var degenerate *errors.DegenerateInputError
		require.True(t, errors.As(err, &degenerate))
		assert.Equal(t, "R2Score", degenerate.Op)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := R2Score(&mat.VecDense{}, &mat.VecDense{})
		var valueErr *errors.ValueError
		assert.True(t, errors.As(err, &valueErr))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := R2Score(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(3, []float64{1, 2, 3}))
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})
}

func TestQuality(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, QualityExcellent},
		{0.9, QualityExcellent},
		{0.8999, QualityGood},
		{0.8, QualityGood},
		{0.75, QualityFair},
		{0.7, QualityFair},
		{0.5, QualityPoor},
		{0.4999, QualityVeryPoor},
		{-3.0, QualityVeryPoor},
		{math.NaN(), QualityVeryPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quality(tt.score), "score=%v", tt.score)
	}
}
