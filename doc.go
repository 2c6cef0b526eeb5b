// Package claimfreq estimates automobile insurance claim frequency from
// policyholder and vehicle attributes with Poisson generalized linear models.
//
// The library covers the full analysis pipeline: loading a policy dataset,
// recoding attributes into unordered categorical factors, descriptive charts,
// a reproducible train/validation split, Poisson regression with a log link
// and log-exposure offset, greedy stepwise term selection on AIC, and model
// comparison by deviance, AIC and Gini concordance (Somers' Dxy).
//
// # Quick start
//
//	data, err := dataset.LoadReference()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	transformed, _ := data.Transform()
//	train, validation, _ := transformed.Split(0.8, 42)
//
//	model := glm.NewPoissonGLM()
//	if err := model.Fit(train, dataset.FactorColumns()); err != nil {
//	    log.Fatal(err)
//	}
//	pred, _ := model.Predict(validation)
//
// A fitted model retains its training caches; Compact() converts it to a
// small prediction-only value that predicts identically and gob-encodes for
// persistence.
//
// # Packages
//
//   - dataset: policy records, CSV loading, transform and seeded split
//   - preprocessing: categorical factor encoding into dummy design columns
//   - glm: Poisson GLM fitting, stepwise selection, compact models
//   - metrics: Somers' Dxy concordance and Poisson deviance
//   - evaluate: model comparison tables
//   - visualize: descriptive charts via gonum/plot
package claimfreq
