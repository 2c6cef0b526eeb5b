package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("PoissonGLM", "Predict")
	if !strings.Contains(err.Error(), "PoissonGLM") || !strings.Contains(err.Error(), "Predict") {
		t.Errorf("unexpected message: %v", err)
	}
	var nf *NotFittedError
	if !As(err, &nf) {
		t.Error("As() failed to unwrap NotFittedError")
	}
	if nf.ModelName != "PoissonGLM" {
		t.Errorf("ModelName = %q, want PoissonGLM", nf.ModelName)
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{name: "Row axis", axis: 0, want: "rows"},
		{name: "Column axis", axis: 1, want: "columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("SomersD", 10, 9, tt.axis)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message %q missing %q", err.Error(), tt.want)
			}
		})
	}
}

func TestConvergenceError(t *testing.T) {
	err := NewConvergenceError("IRLS", 25, 123.456)
	var ce *ConvergenceError
	if !As(err, &ce) {
		t.Fatal("As() failed to unwrap ConvergenceError")
	}
	if ce.Iterations != 25 {
		t.Errorf("Iterations = %d, want 25", ce.Iterations)
	}
	if !strings.Contains(err.Error(), "IRLS") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDataError(t *testing.T) {
	err := NewDataError("LoadCSVReader", 3, "exposure", "exposure must be positive")
	if !strings.Contains(err.Error(), "row 3") || !strings.Contains(err.Error(), "exposure") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := Wrap(ErrSingularDesign, "PoissonGLM.Fit")
	if !Is(err, ErrSingularDesign) {
		t.Error("wrapped sentinel lost identity")
	}
	err = Wrapf(ErrUnknownLevel, "column %s", "sex")
	if !Is(err, ErrUnknownLevel) {
		t.Error("wrapped sentinel lost identity")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	prev := func(w error) {}
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(prev)

	w := NewUndefinedMetricWarning("somers_d", "no comparable pairs", 0)
	Warn(w)
	if captured == nil {
		t.Fatal("warning handler not invoked")
	}
	if !strings.Contains(captured.Error(), "somers_d") {
		t.Errorf("unexpected warning: %v", captured)
	}
}

func TestZerologWarnSinkPrecedence(t *testing.T) {
	var viaHandler, viaZerolog bool
	SetWarningHandler(func(w error) { viaHandler = true })
	SetZerologWarnFunc(func(w error) { viaZerolog = true })
	defer SetZerologWarnFunc(nil)
	defer SetWarningHandler(func(w error) {})

	Warn(New("test"))
	if !viaZerolog {
		t.Error("zerolog sink not invoked")
	}
	if viaHandler {
		t.Error("plain handler invoked despite zerolog sink")
	}
}
