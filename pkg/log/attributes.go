// Standard attribute keys used across the library's log records.
//
// The keys follow a hierarchical naming convention ("model.name",
// "data.samples", "loess.span") so records can be filtered and analyzed
// by component. Estimators attach these keys rather than ad-hoc strings
// to keep the log stream uniform.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LOESS", "KNNRegressor", "OLS"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate"
	OperationKey = "op"

	// ComponentKey identifies the package or component emitting the record.
	// Examples: "loess", "knn.classifier", "ols"
	ComponentKey = "component"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// TrainSamplesKey is the number of stored training samples for
	// instance-based estimators.
	TrainSamplesKey = "data.train_samples"
)

// Smoothing parameters.
const (
	// SpanKey is the fraction of points in each local window.
	SpanKey = "loess.span"

	// DegreeKey is the local polynomial degree.
	DegreeKey = "loess.degree"

	// WindowSizeKey is the resolved window size in points.
	WindowSizeKey = "loess.window_size"
)

// Nearest-neighbor parameters.
const (
	// NeighborsKey is the number of neighbors consulted per query.
	NeighborsKey = "knn.k"

	// WeightedKey reports whether neighbor votes are distance-weighted.
	WeightedKey = "knn.weighted"
)

// Least-squares parameters.
const (
	// MethodKey is the solver used for the normal equations.
	// Values: "inverse", "qr"
	MethodKey = "ols.method"

	// LevelKey is the confidence level for interval construction.
	LevelKey = "ols.level"
)

// Performance and evaluation metrics.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// MSEKey records mean squared error.
	MSEKey = "metrics.mse"

	// RMSEKey records root mean squared error.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// FStatKey records the overall F statistic of a fitted model.
	FStatKey = "metrics.f_stat"
)

// Error and warning context.
const (
	// ErrorCodeKey provides a structured error code for programmatic
	// handling. Examples: "DIMENSION_MISMATCH", "NOT_FITTED"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the error.
	// Examples: "InvalidParameterError", "SingularMatrixError"
	ErrorTypeKey = "error.type"

	// WarningKey carries a structured warning object.
	WarningKey = "warning"
)

// Standard attribute values for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationEvaluate     = "evaluate"

	// Standard error codes
	ErrorNotFitted             = "NOT_FITTED"
	ErrorDimensionMismatch     = "DIMENSION_MISMATCH"
	ErrorEmptyData             = "EMPTY_DATA"
	ErrorInvalidParameter      = "INVALID_PARAMETER"
	ErrorSingularMatrix        = "SINGULAR_MATRIX"
	ErrorInsufficientNeighbors = "INSUFFICIENT_NEIGHBORS"
	ErrorNumericalInstability  = "NUMERICAL_INSTABILITY"
)
