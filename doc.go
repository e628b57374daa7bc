// Package statfit provides classical statistical learning for Go,
// built on gonum and designed for services that need smoothing,
// nearest-neighbor prediction, or regression with full inference.
//
// statfit keeps the scikit-learn-like Fit/Predict shape familiar from
// Python while staying idiomatic Go: explicit errors, functional
// options, and plain slices and gonum matrices at the boundaries.
//
// # Features
//
// - LOESS: locally weighted polynomial smoothing with tunable span and degree
// - KNN: distance-weighted k-nearest-neighbor regression and classification
// - OLS: single-predictor least squares with t-tests, ANOVA, and intervals
// - Robust Error Handling: typed errors with stack traces throughout
// - CPU-parallel batch loops for larger inputs
//
// # Installation
//
// Install statfit using go get:
//
//	go get github.com/YuminosukeSato/statfit
//
// # Quick Start
//
// Smoothing a noisy series with LOESS:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/statfit/loess"
//	)
//
//	func main() {
//	    x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
//	    y := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.2, 13.8, 16.1}
//
//	    smoother := loess.New(loess.WithSpan(0.75), loess.WithDegree(1))
//	    result, err := smoother.Fit(x, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("Smoothed:", result.Fitted)
//	    fmt.Println("MSE:", result.MSE)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - loess: locally weighted polynomial smoothing
//   - neighbors: distance-weighted KNN (Regressor, Classifier)
//   - ols: ordinary least squares with inferential statistics
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R², accuracy, confusion matrix)
//   - preprocessing: StandardScaler and MinMaxScaler
//   - dataset: CSV ingestion into named-column tables
//   - core/model: shared fitted-state management
//   - core/parallel: parallel processing utilities
//
// # Performance
//
// Batch loops parallelize automatically:
//
//   - Automatic parallelization for inputs with >1000 rows
//   - CPU core detection and optimal worker allocation
//   - Thread-safe operations
//
// # License
//
// statfit is released under the MIT License.
package statfit
