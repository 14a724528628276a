package linear

import (
	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/preprocessing"
)

// Estimate は仮説関数 theta0 + theta1 * x を返す
// x は正規化済みの走行距離
func Estimate(x, theta0, theta1 float64) float64 {
	return theta0 + theta1*x
}

// PredictPrice は生の走行距離から価格を推定する
// 走行距離を正規化し、正規化空間で推定し、価格のスケールに戻す
func PredictPrice(p model.Params, mileage float64) float64 {
	normalized := preprocessing.Normalize(mileage, p.MaxMileage)
	return preprocessing.Denormalize(Estimate(normalized, p.Theta0, p.Theta1), p.MaxPrices)
}

// Cost は正規化データ上の二乗誤差コストを計算する
// cost = (1/2n) * Σ(Estimate(x_i) - y_i)²
func Cost(x, y []float64, theta0, theta1 float64) (float64, error) {
	n := len(x)
	if n == 0 {
		return 0, errors.NewModelError("Cost", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return 0, errors.NewDimensionError("Cost", n, len(y))
	}
	return cost(x, y, theta0, theta1), nil
}

func cost(x, y []float64, theta0, theta1 float64) float64 {
	var total float64
	for i := range x {
		diff := Estimate(x[i], theta0, theta1) - y[i]
		total += diff * diff
	}
	return total / (2 * float64(len(x)))
}
