package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// Normalize は値を最大値で割って [0,1] に写す
// max が0の場合の結果は浮動小数点の除算に従う (±Inf または NaN)
func Normalize(value, max float64) float64 {
	return value / max
}

// Denormalize は正規化された値を元のスケールに戻す
func Denormalize(value, max float64) float64 {
	return value * max
}

// MaxScaler は最大値で割るスケーラー
// 最小値は使わず、0 を原点としたまま [0,1] にスケーリングする
// 走行距離と価格はそれぞれ自身の最大値でスケーリングする
type MaxScaler struct {
	model.BaseEstimator

	// Max は学習データの最大値
	Max float64

	// NSamples は学習に使ったサンプル数
	NSamples int
}

var _ model.Transformer = (*MaxScaler)(nil)

// NewMaxScaler は新しいMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMaxScaler()
//	err := scaler.Fit(mileages)
//	scaled, err := scaler.Transform(mileages)
func NewMaxScaler() *MaxScaler {
	return &MaxScaler{}
}

// NewFittedMaxScaler は既知の最大値から学習済みのMaxScalerを作成する
// 保存済みパラメータレコードから復元する場合に使う
func NewFittedMaxScaler(max float64) (*MaxScaler, error) {
	if !(max > 0) {
		return nil, errors.NewDegenerateInputError("MaxScaler", fmt.Sprintf("max must be strictly positive, got %g", max))
	}
	s := &MaxScaler{Max: max}
	s.SetFitted()
	return s, nil
}

// Fit は学習データから最大値を計算する
//
// パラメータ:
//   - values: 1列分の学習データ
//
// 戻り値:
//   - error: 空データの場合、または最大値が正でない場合
func (s *MaxScaler) Fit(values []float64) error {
	if len(values) == 0 {
		return errors.NewModelError("MaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	max := floats.Max(values)
	// 最大値が0以下だと正規化が定義できない
	if !(max > 0) {
		return errors.NewDegenerateInputError("MaxScaler.Fit", fmt.Sprintf("max must be strictly positive, got %g", max))
	}

	s.Max = max
	s.NSamples = len(values)
	s.SetFitted()
	return nil
}

// Transform は学習済みの最大値で各値を正規化する
//
// パラメータ:
//   - values: 変換するデータ
//
// 戻り値:
//   - []float64: 正規化されたデータ (入力は変更しない)
//   - error: 未学習の場合
func (s *MaxScaler) Transform(values []float64) ([]float64, error) {
	if err := s.RequireFitted("MaxScaler", "Transform"); err != nil {
		return nil, err
	}

	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = Normalize(v, s.Max)
	}
	return result, nil
}

// FitTransform は学習データで学習し、同じデータを変換する
func (s *MaxScaler) FitTransform(values []float64) ([]float64, error) {
	if err := s.Fit(values); err != nil {
		return nil, err
	}
	return s.Transform(values)
}

// InverseTransform は正規化されたデータを元のスケールに戻す
func (s *MaxScaler) InverseTransform(values []float64) ([]float64, error) {
	if err := s.RequireFitted("MaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = Denormalize(v, s.Max)
	}
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *MaxScaler) String() string {
	if !s.IsFitted() {
		return "MaxScaler()"
	}
	return fmt.Sprintf("MaxScaler(max=%g, n_samples=%d)", s.Max, s.NSamples)
}
