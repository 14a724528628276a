package linear

import (
	"context"
	"math"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// EpochInfo は1エポック終了時の状態
type EpochInfo struct {
	Epoch     int
	Theta0    float64
	Theta1    float64
	SumError0 float64
	SumError1 float64
}

// GradientDescent はバッチ勾配降下法による単回帰モデル
// 正規化空間の (theta0, theta1) を学習する
type GradientDescent struct {
	model.BaseEstimator

	learningRate float64
	epochs       int
	callback     func(EpochInfo)
	trackCost    bool
	logger       log.Logger

	theta0      float64
	theta1      float64
	costHistory []float64
}

var (
	_ model.Fitter    = (*GradientDescent)(nil)
	_ model.Predictor = (*GradientDescent)(nil)
)

// NewGradientDescent は新しいGradientDescentを作成する
//
// 使用例:
//
//	gd := linear.NewGradientDescent(
//	    linear.WithLearningRate(1.0),
//	    linear.WithEpochs(1000),
//	)
//	err := gd.Fit(mileagesNorm, pricesNorm)
func NewGradientDescent(opts ...Option) *GradientDescent {
	g := &GradientDescent{
		learningRate: DefaultLearningRate,
		epochs:       DefaultEpochs,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.GetLogger()
	}
	return g
}

// Fit はモデルを正規化済みの訓練データで学習させる
//
// パラメータは (0, 0) から始め、固定のエポック数だけ全バッチで更新する
// 収束判定、勾配クリッピング、NaN検出は行わない
// 発散した場合は Inf/NaN がそのまま結果になる
func (g *GradientDescent) Fit(x, y []float64) error {
	n := len(x)
	if n == 0 {
		return errors.NewModelError("GradientDescent.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return errors.NewDimensionError("GradientDescent.Fit", n, len(y))
	}
	if !(g.learningRate > 0) || math.IsInf(g.learningRate, 0) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", g.learningRate)
	}
	if g.epochs <= 0 {
		return errors.NewValidationError("epochs", "must be positive", g.epochs)
	}

	logger := g.logger.With(log.ModelNameKey, "GradientDescent")
	debug := logger.Enabled(context.Background(), log.LevelDebug)
	logger.Info("Starting training",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.EpochsKey, g.epochs,
		log.LearningRateKey, g.learningRate,
	)

	g.Reset()
	g.theta0, g.theta1 = 0.0, 0.0
	g.costHistory = nil
	if g.trackCost {
		g.costHistory = make([]float64, 0, g.epochs)
	}

	samples := float64(n)
	for epoch := 0; epoch < g.epochs; epoch++ {
		var sumError0, sumError1 float64

		// 全サンプルの誤差を累積する
		for i := 0; i < n; i++ {
			residual := Estimate(x[i], g.theta0, g.theta1) - y[i]
			sumError0 += residual
			sumError1 += residual * x[i]
		}

		// 両パラメータを同時に更新する
		step0 := g.learningRate * sumError0 / samples
		step1 := g.learningRate * sumError1 / samples
		g.theta0 -= step0
		g.theta1 -= step1

		if debug && epoch == 0 {
			logger.Debug("First epoch details",
				log.SumError0Key, sumError0,
				log.SumError1Key, sumError1,
				log.Step0Key, step0,
				log.Step1Key, step1,
			)
		}

		if g.trackCost {
			g.costHistory = append(g.costHistory, cost(x, y, g.theta0, g.theta1))
		}

		if debug && epoch%10 == 0 {
			logger.Debug("Epoch completed",
				log.EpochKey, epoch,
				log.SumError0Key, sumError0,
				log.SumError1Key, sumError1,
				log.Theta0Key, g.theta0,
				log.Theta1Key, g.theta1,
			)
		}

		if g.callback != nil {
			g.callback(EpochInfo{
				Epoch:     epoch,
				Theta0:    g.theta0,
				Theta1:    g.theta1,
				SumError0: sumError0,
				SumError1: sumError1,
			})
		}
	}

	logger.Info("Training completed",
		log.Theta0Key, g.theta0,
		log.Theta1Key, g.theta1,
	)

	g.SetFitted()
	return nil
}

// Predict は正規化空間での予測値を返す
func (g *GradientDescent) Predict(x []float64) ([]float64, error) {
	if err := g.RequireFitted("GradientDescent", "Predict"); err != nil {
		return nil, err
	}

	predictions := make([]float64, len(x))
	for i, v := range x {
		predictions[i] = Estimate(v, g.theta0, g.theta1)
	}
	return predictions, nil
}

// Theta0 は学習された切片を返す
func (g *GradientDescent) Theta0() float64 {
	return g.theta0
}

// Theta1 は学習された傾きを返す
func (g *GradientDescent) Theta1() float64 {
	return g.theta1
}

// CostHistory は各エポック後のコストを返す
// WithCostHistory(true) で作成した場合のみ記録される
func (g *GradientDescent) CostHistory() []float64 {
	if g.costHistory == nil {
		return nil
	}
	history := make([]float64, len(g.costHistory))
	copy(history, g.costHistory)
	return history
}

// Params は学習結果と正規化係数からパラメータレコードを作る
func (g *GradientDescent) Params(maxMileage, maxPrices float64) (model.Params, error) {
	if err := g.RequireFitted("GradientDescent", "Params"); err != nil {
		return model.Params{}, err
	}
	return model.Params{
		Theta0:     g.theta0,
		Theta1:     g.theta1,
		MaxMileage: maxMileage,
		MaxPrices:  maxPrices,
	}, nil
}

// LearningRate は設定された学習率を返す
func (g *GradientDescent) LearningRate() float64 {
	return g.learningRate
}

// Epochs は設定されたエポック数を返す
func (g *GradientDescent) Epochs() int {
	return g.epochs
}
