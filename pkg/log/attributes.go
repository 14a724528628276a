// Package log defines standard attribute keys for carprice operations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that training and prediction logs can be filtered the
// same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "GradientDescent", "MaxScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "save", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is performing the operation.
	// Examples: "training", "prediction", "chart"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of observations in the dataset.
	SamplesKey = "data.samples"

	// SourceKey is the path of the file the data or record was read from.
	SourceKey = "data.source"

	// MileageMinKey and MileageMaxKey describe the observed mileage range.
	MileageMinKey = "data.mileage_min"
	MileageMaxKey = "data.mileage_max"

	// PriceMinKey and PriceMaxKey describe the observed price range.
	PriceMinKey = "data.price_min"
	PriceMaxKey = "data.price_max"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the cost value during training or evaluation.
	LossKey = "metrics.loss"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"
)

// Hyperparameters and learned parameters
const (
	// LearningRateKey records the learning rate for gradient descent.
	LearningRateKey = "hyperparams.learning_rate"

	// EpochsKey records the configured number of epochs.
	EpochsKey = "hyperparams.epochs"

	// Theta0Key and Theta1Key record the intercept and slope in normalized space.
	Theta0Key = "params.theta0"
	Theta1Key = "params.theta1"

	// SumError0Key and SumError1Key record the accumulated batch errors of an epoch.
	SumError0Key = "training.sum_error0"
	SumError1Key = "training.sum_error1"

	// Step0Key and Step1Key record the update subtracted from each theta.
	Step0Key = "training.step0"
	Step1Key = "training.step1"
)

// Prediction Context
const (
	// MileageKey records the raw mileage of a prediction query.
	MileageKey = "preds.mileage"

	// PriceKey records a denormalized price estimate.
	PriceKey = "preds.price"
)

// Error Context
const (
	// ErrorKey holds the error value itself.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated when an error from cockroachdb/errors is logged.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationSave      = "save"
	OperationLoad      = "load"
	OperationPlot      = "plot"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
