// Package log defines standard attribute keys for the claim-frequency
// modeling pipeline. Keys follow a hierarchical dotted convention
// (e.g. "model.name", "data.rows") for structured log filtering.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "PoissonGLM", "FactorEncoder"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "split", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "dataset", "glm", "evaluate", "visualize"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// RowsKey is the number of records being processed.
	RowsKey = "data.rows"

	// ColumnsKey is the number of design-matrix columns.
	ColumnsKey = "data.columns"

	// TrainRowsKey and ValidationRowsKey describe a train/validation split.
	TrainRowsKey      = "data.train_rows"
	ValidationRowsKey = "data.validation_rows"

	// SeedKey is the random seed driving a reproducible operation.
	SeedKey = "data.seed"
)

// Fit statistics.
const (
	// DevianceKey is the residual deviance of a fitted model.
	DevianceKey = "glm.deviance"

	// AICKey is the Akaike information criterion of a fitted model.
	AICKey = "glm.aic"

	// GiniKey is a Gini concordance (Somers' Dxy) value.
	GiniKey = "metrics.gini"

	// IterationKey is the current IRLS iteration.
	IterationKey = "training.iteration"

	// TermsKey is the list of model terms, e.g. after stepwise selection.
	TermsKey = "glm.terms"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
