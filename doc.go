// Package carprice estimates the price of a used car from its mileage with a
// univariate linear model trained by batch gradient descent.
//
// Mileage and price are each divided by their maximum before training, the
// model price = theta0 + theta1 * mileage is fitted in that normalized space,
// and the four numbers needed to answer a query again (theta0, theta1 and the
// two maxima) are written to a small JSON record.
//
// # Installation
//
//	go install github.com/YuminosukeSato/carprice/cmd/carprice@latest
//
// # Quick Start
//
// Train on a CSV with km and price columns, then ask for an estimate:
//
//	carprice train --data data.csv --model model.json
//	carprice predict --data data.csv --model model.json
//
// The same pipeline is available as a library:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/carprice/config"
//	    "github.com/YuminosukeSato/carprice/linear"
//	    "github.com/YuminosukeSato/carprice/training"
//	)
//
//	func main() {
//	    cfg := config.New()
//	    result, err := training.Run(context.Background(), *cfg, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%.2f€\n", linear.PredictPrice(result.Params, 100000))
//	}
//
// # Packages
//
//   - preprocessing: max normalization (MaxScaler)
//   - linear: hypothesis, cost and the GradientDescent trainer
//   - metrics: R², MSE, RMSE, MAE and the quality label
//   - core/model: parameter record and its JSON persistence
//   - dataset: CSV observations
//   - chart: regression plot
//   - training: train pipeline
//   - prediction: predictor and interactive session
//   - config: configuration file, environment and flags
//   - pkg/errors, pkg/log: error types and structured logging
//
// # License
//
// carprice is released under the MIT License.
package carprice
