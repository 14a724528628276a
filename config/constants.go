package config

const (
	// DefaultDataPath is the training data read by both commands.
	DefaultDataPath = "data.csv"

	// DefaultModelPath is where the parameter record is written and read.
	DefaultModelPath = "model.json"

	// DefaultLearningRate is the gradient descent step size.
	DefaultLearningRate = 1.0

	// DefaultEpochs is the fixed number of full-batch iterations.
	DefaultEpochs = 1000

	// DefaultPlotPath is the regression plot artifact.
	DefaultPlotPath = "regression_plot.png"

	// DefaultPlotStep is the mileage spacing of the sampled regression line.
	DefaultPlotStep = 1000.0

	// DefaultPlotWidthInch and DefaultPlotHeightInch give a 6x4 inch figure.
	DefaultPlotWidthInch  = 6.0
	DefaultPlotHeightInch = 4.0

	// DefaultLogLevel is the minimum level written to the console.
	DefaultLogLevel = "info"
)

// EnvPrefix is the prefix of environment variables that override
// configuration keys, e.g. CARPRICE_TRAIN_EPOCHS.
const EnvPrefix = "carprice"

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = "carprice.yaml"
