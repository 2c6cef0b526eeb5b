package evaluate

import (
	"strings"
	"testing"

	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/glm"
)

func fittedModels(t *testing.T) ([]Labeled, *dataset.Dataset, *dataset.Dataset) {
	t.Helper()
	data, err := dataset.LoadReference()
	if err != nil {
		t.Fatalf("LoadReference() error = %v", err)
	}
	transformed, err := data.Transform()
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	train, validation, err := transformed.Split(0.8, 42)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	intercept := glm.NewPoissonGLM()
	if err := intercept.Fit(train, nil); err != nil {
		t.Fatalf("Fit(intercept) error = %v", err)
	}
	full := glm.NewPoissonGLM()
	if err := full.Fit(train, dataset.FactorColumns()); err != nil {
		t.Fatalf("Fit(full) error = %v", err)
	}
	models := []Labeled{
		{Label: "intercept", Model: intercept},
		{Label: "full", Model: full},
	}
	return models, train, validation
}

func TestEvaluate(t *testing.T) {
	models, train, validation := fittedModels(t)

	c, err := Evaluate(models, train, validation)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(c.Rows) != len(models) {
		t.Fatalf("rows = %d, want %d", len(c.Rows), len(models))
	}
	// One row per model, in fit order.
	for i, m := range models {
		if c.Rows[i].Label != m.Label {
			t.Errorf("row %d label = %q, want %q", i, c.Rows[i].Label, m.Label)
		}
	}
	for _, r := range c.Rows {
		if r.GiniTrain < -1 || r.GiniTrain > 1 {
			t.Errorf("%s: training Gini %v outside [-1,1]", r.Label, r.GiniTrain)
		}
		if r.GiniValidation < -1 || r.GiniValidation > 1 {
			t.Errorf("%s: validation Gini %v outside [-1,1]", r.Label, r.GiniValidation)
		}
		if r.Deviance <= 0 {
			t.Errorf("%s: deviance %v not positive", r.Label, r.Deviance)
		}
	}

	// Table statistics come straight from the fit.
	wantDev, _ := models[0].Model.Deviance()
	if c.Rows[0].Deviance != wantDev {
		t.Errorf("row 0 deviance = %v, want %v", c.Rows[0].Deviance, wantDev)
	}
	wantAIC, _ := models[1].Model.AIC()
	if c.Rows[1].AIC != wantAIC {
		t.Errorf("row 1 AIC = %v, want %v", c.Rows[1].AIC, wantAIC)
	}
}

func TestComparisonString(t *testing.T) {
	models, train, validation := fittedModels(t)
	c, err := Evaluate(models, train, validation)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	table := c.String()
	for _, label := range []string{"intercept", "full", "Deviance", "Gini (validation)"} {
		if !strings.Contains(table, label) {
			t.Errorf("table missing %q:\n%s", label, table)
		}
	}
}

func TestEvaluateArgs(t *testing.T) {
	models, train, validation := fittedModels(t)

	if _, err := Evaluate(nil, train, validation); err == nil {
		t.Error("Evaluate() with no models: want error, got nil")
	}

	// Untransformed datasets have no frequency column.
	raw, err := dataset.LoadReference()
	if err != nil {
		t.Fatalf("LoadReference() error = %v", err)
	}
	if _, err := Evaluate(models, raw, validation); err == nil {
		t.Error("Evaluate() on untransformed data: want error, got nil")
	}

	unfitted := []Labeled{{Label: "unfitted", Model: glm.NewPoissonGLM()}}
	if _, err := Evaluate(unfitted, train, validation); err == nil {
		t.Error("Evaluate() with unfitted model: want error, got nil")
	}
}
