package linear

import "github.com/YuminosukeSato/carprice/pkg/log"

const (
	// DefaultLearningRate は正規化空間での既定の学習率
	DefaultLearningRate = 1.0
	// DefaultEpochs は既定のエポック数
	DefaultEpochs = 1000
)

// Option is a function that configures GradientDescent
type Option func(*GradientDescent)

// WithLearningRate sets the step size applied to both gradients
func WithLearningRate(lr float64) Option {
	return func(g *GradientDescent) {
		g.learningRate = lr
	}
}

// WithEpochs sets the fixed number of full-batch passes
func WithEpochs(epochs int) Option {
	return func(g *GradientDescent) {
		g.epochs = epochs
	}
}

// WithCallback registers a function called after every epoch's update
func WithCallback(fn func(EpochInfo)) Option {
	return func(g *GradientDescent) {
		g.callback = fn
	}
}

// WithCostHistory records the cost after every epoch
func WithCostHistory(enabled bool) Option {
	return func(g *GradientDescent) {
		g.trackCost = enabled
	}
}

// WithLogger sets the logger used for training diagnostics
func WithLogger(l log.Logger) Option {
	return func(g *GradientDescent) {
		g.logger = l
	}
}
