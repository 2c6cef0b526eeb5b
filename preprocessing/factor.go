// Package preprocessing provides feature encoders for claim-frequency
// modeling. The central type is FactorEncoder, which recodes string-valued
// policy attributes into unordered categorical factors and expands them into
// dummy design columns.
package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/core/model"
	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/pkg/errors"
)

// FactorEncoder learns the level set of each categorical column and expands
// records into reference-coded dummy columns. Levels are sorted
// lexicographically within a column; the first level is the reference and
// gets no dummy. No ordinal meaning is attached to any level.
type FactorEncoder struct {
	state   *model.StateManager
	columns []string
	levels  map[string][]string
}

// NewFactorEncoder creates an encoder for the given factor columns. With no
// arguments it encodes every canonical factor column of the policy schema.
func NewFactorEncoder(columns ...string) *FactorEncoder {
	if len(columns) == 0 {
		columns = dataset.FactorColumns()
	}
	return &FactorEncoder{
		state:   model.NewStateManager("FactorEncoder"),
		columns: columns,
	}
}

// Columns returns the encoded factor columns in declaration order.
func (e *FactorEncoder) Columns() []string {
	return append([]string(nil), e.columns...)
}

// Fit scans the dataset and records the sorted level set of every encoded
// column.
func (e *FactorEncoder) Fit(d *dataset.Dataset) error {
	if d.Len() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "FactorEncoder.Fit")
	}
	levels := make(map[string][]string, len(e.columns))
	for _, col := range e.columns {
		values, err := d.Factor(col)
		if err != nil {
			return err
		}
		seen := make(map[string]struct{})
		var ls []string
		for _, v := range values {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				ls = append(ls, v)
			}
		}
		sort.Strings(ls)
		levels[col] = ls
	}
	e.levels = levels
	e.state.SetFitted(d.Len(), len(e.columns))
	return nil
}

// Levels returns the fitted level set of a column, reference level first.
func (e *FactorEncoder) Levels(column string) ([]string, error) {
	if err := e.state.RequireFitted("Levels"); err != nil {
		return nil, err
	}
	ls, ok := e.levels[column]
	if !ok {
		return nil, errors.NewValueError("FactorEncoder.Levels", "column not encoded: "+column)
	}
	return append([]string(nil), ls...), nil
}

// Transform expands every encoded column of d into dummy columns.
func (e *FactorEncoder) Transform(d *dataset.Dataset) (*mat.Dense, []string, error) {
	if err := e.state.RequireFitted("Transform"); err != nil {
		return nil, nil, err
	}
	return e.TransformColumns(d, e.columns)
}

// TransformColumns expands the named subset of encoded columns into a dummy
// design block. The returned labels are "column=level" strings matching the
// matrix columns. A level absent from the fit is an error: prediction input
// must be structurally compatible with the fitted design.
func (e *FactorEncoder) TransformColumns(d *dataset.Dataset, columns []string) (*mat.Dense, []string, error) {
	if err := e.state.RequireFitted("TransformColumns"); err != nil {
		return nil, nil, err
	}
	if d.Len() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "FactorEncoder.TransformColumns")
	}

	var labels []string
	type dummy struct {
		column string
		level  string
	}
	var dummies []dummy
	for _, col := range columns {
		ls, ok := e.levels[col]
		if !ok {
			return nil, nil, errors.NewValueError("FactorEncoder.TransformColumns", "column not encoded: "+col)
		}
		for _, lv := range ls[1:] { // reference level dropped
			dummies = append(dummies, dummy{column: col, level: lv})
			labels = append(labels, col+"="+lv)
		}
	}

	if len(dummies) == 0 {
		// Every requested column is single-level; the block carries no
		// information. Callers add their own intercept.
		return nil, []string{}, nil
	}
	n := d.Len()
	X := mat.NewDense(n, len(dummies), nil)
	for i := 0; i < n; i++ {
		rec := d.Record(i)
		for j, dm := range dummies {
			v, _ := rec.Factor(dm.column)
			if !levelKnown(e.levels[dm.column], v) {
				return nil, nil, errors.Wrapf(errors.ErrUnknownLevel, "column %s, level %q", dm.column, v)
			}
			if v == dm.level {
				X.Set(i, j, 1)
			}
		}
	}
	return X, labels, nil
}

// FitTransform fits the encoder and transforms the same dataset.
func (e *FactorEncoder) FitTransform(d *dataset.Dataset) (*mat.Dense, []string, error) {
	if err := e.Fit(d); err != nil {
		return nil, nil, err
	}
	return e.Transform(d)
}

// LevelMap returns a copy of the fitted column-to-levels mapping, for
// embedding in compact prediction models.
func (e *FactorEncoder) LevelMap() (map[string][]string, error) {
	if err := e.state.RequireFitted("LevelMap"); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(e.levels))
	for col, ls := range e.levels {
		out[col] = append([]string(nil), ls...)
	}
	return out, nil
}

func levelKnown(levels []string, v string) bool {
	for _, l := range levels {
		if l == v {
			return true
		}
	}
	return false
}
