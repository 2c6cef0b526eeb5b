package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/pkg/errors"
)

// CompactModel is the reduced, prediction-only representation of a fitted
// PoissonGLM. It keeps the coefficients, the term and level structure of the
// design, and the family/link/offset specification; the training response,
// fitted values, working weights and design matrix of the full fit are gone.
//
// All fields are exported so the value gob-encodes with
// core/model.SaveModel.
type CompactModel struct {
	Family       string
	Link         string
	OffsetLogExp bool // linear predictor includes log(exposure)

	Terms        []string            // factor terms in design order
	Levels       map[string][]string // fitted levels per term, reference first
	Labels       []string            // design column labels, intercept first
	Coefficients []float64           // aligned with Labels
}

// Compact converts the fitted model to its compact representation. The
// returned value predicts identically to the full model: both share one
// linear-predictor path.
func (g *PoissonGLM) Compact() (*CompactModel, error) {
	if err := g.state.RequireFitted("Compact"); err != nil {
		return nil, err
	}
	c := *g.compact
	c.Terms = append([]string(nil), g.compact.Terms...)
	c.Labels = append([]string(nil), g.compact.Labels...)
	c.Coefficients = append([]float64(nil), g.compact.Coefficients...)
	c.Levels = make(map[string][]string, len(g.compact.Levels))
	for k, v := range g.compact.Levels {
		c.Levels[k] = append([]string(nil), v...)
	}
	return &c, nil
}

// LinearPredictor computes the linear predictor for one record, including
// the log-exposure offset. The record must use only factor levels seen
// during fitting.
func (m *CompactModel) LinearPredictor(rec dataset.Record) (float64, error) {
	lp := m.Coefficients[0] // intercept
	col := 1
	for _, term := range m.Terms {
		v, ok := rec.Factor(term)
		if !ok {
			return 0, errors.NewValueError("CompactModel.LinearPredictor", "unknown factor column "+term)
		}
		levels := m.Levels[term]
		found := false
		for _, lv := range levels {
			if lv == v {
				found = true
				break
			}
		}
		if !found {
			return 0, errors.Wrapf(errors.ErrUnknownLevel, "column %s, level %q", term, v)
		}
		for _, lv := range levels[1:] {
			if v == lv {
				lp += m.Coefficients[col]
			}
			col++
		}
	}
	if m.OffsetLogExp {
		if rec.Exposure <= 0 {
			return 0, errors.NewValueError("CompactModel.LinearPredictor", "exposure must be positive")
		}
		lp += math.Log(rec.Exposure)
	}
	return lp, nil
}

// Predict returns the predicted mean claim count for each record of d.
func (m *CompactModel) Predict(d *dataset.Dataset) (*mat.VecDense, error) {
	n := d.Len()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "CompactModel.Predict")
	}
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		lp, err := m.LinearPredictor(d.Record(i))
		if err != nil {
			return nil, err
		}
		out.SetVec(i, math.Exp(lp))
	}
	return out, nil
}
