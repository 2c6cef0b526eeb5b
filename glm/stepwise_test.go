package glm

import (
	"testing"

	"github.com/insurekit/claimfreq/dataset"
)

// stepwiseData builds 40 records with a strong sex effect (M rate 0.5, F
// rate 2.0) and a vehicle-age factor balanced to carry no information.
func stepwiseData() *dataset.Dataset {
	records := make([]dataset.Record, 40)
	for i := range records {
		r := dataset.Record{
			Female: "no", Private: "yes", NCD: "0", AgeCat: "A",
			Exposure: 1.0,
		}
		if i%2 == 0 {
			r.Sex = "M"
			if i%4 == 0 {
				r.Claims = 0
			} else {
				r.Claims = 1
			}
		} else {
			r.Sex = "F"
			r.Female = "yes"
			r.Claims = 2
		}
		if i < 20 {
			r.VehAge = "0-3"
		} else {
			r.VehAge = "8-11"
		}
		records[i] = r
	}
	return dataset.New(records)
}

func TestStepwiseSelectsInformativeTerm(t *testing.T) {
	train := stepwiseData()

	model, trace, err := Stepwise(train, []string{dataset.ColSex, dataset.ColVehAge})
	if err != nil {
		t.Fatalf("Stepwise() error = %v", err)
	}

	terms := model.Terms()
	if len(terms) != 1 || terms[0] != dataset.ColSex {
		t.Errorf("Terms() = %v, want [sex]", terms)
	}
	if len(trace) != 1 || trace[0].Added != dataset.ColSex {
		t.Errorf("trace = %+v, want single addition of sex", trace)
	}
}

func TestStepwiseBoundedByIntercept(t *testing.T) {
	train := stepwiseData()

	intercept := NewPoissonGLM()
	if err := intercept.Fit(train, nil); err != nil {
		t.Fatalf("Fit(intercept) error = %v", err)
	}
	interceptAIC, _ := intercept.AIC()

	model, _, err := Stepwise(train, dataset.FactorColumns())
	if err != nil {
		t.Fatalf("Stepwise() error = %v", err)
	}
	stepAIC, _ := model.AIC()
	if stepAIC > interceptAIC {
		t.Errorf("stepwise AIC %v exceeds intercept AIC %v", stepAIC, interceptAIC)
	}
}

func TestStepwiseDeterministic(t *testing.T) {
	train := stepwiseData()
	candidates := dataset.FactorColumns()

	a, _, err := Stepwise(train, candidates)
	if err != nil {
		t.Fatalf("Stepwise() error = %v", err)
	}
	b, _, err := Stepwise(train, candidates)
	if err != nil {
		t.Fatalf("Stepwise() error = %v", err)
	}
	ta, tb := a.Terms(), b.Terms()
	if len(ta) != len(tb) {
		t.Fatalf("repeated runs selected %v and %v", ta, tb)
	}
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("repeated runs selected %v and %v", ta, tb)
		}
	}
}

func TestStepwiseNoCandidates(t *testing.T) {
	if _, _, err := Stepwise(stepwiseData(), nil); err == nil {
		t.Error("Stepwise() without candidates: want error, got nil")
	}
}
