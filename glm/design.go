package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/pkg/errors"
	"github.com/insurekit/claimfreq/preprocessing"
)

// interceptLabel is the label of the leading all-ones design column.
const interceptLabel = "(Intercept)"

// design is the assembled fitting problem: intercept plus dummy-coded factor
// terms, the count response and the log-exposure offset.
type design struct {
	X      *mat.Dense    // n x p, first column all ones
	y      *mat.VecDense // claim counts
	offset *mat.VecDense // log exposure, coefficient fixed at 1
	labels []string      // column labels, intercept first
}

// buildDesign assembles the design for the given factor terms. An empty term
// list yields the intercept-only design.
func buildDesign(d *dataset.Dataset, enc *preprocessing.FactorEncoder, terms []string) (*design, error) {
	n := d.Len()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "glm.buildDesign")
	}

	var block *mat.Dense
	var blockLabels []string
	if len(terms) > 0 {
		var err error
		block, blockLabels, err = enc.TransformColumns(d, terms)
		if err != nil {
			return nil, err
		}
	}

	p := 1
	if block != nil {
		p += len(blockLabels)
	}
	// The QR solve needs at least as many rows as columns.
	if p > n {
		return nil, errors.Wrapf(errors.ErrSingularDesign, "glm.buildDesign: %d design columns exceed %d rows", p, n)
	}
	X := mat.NewDense(n, p, nil)
	labels := make([]string, 0, p)
	labels = append(labels, interceptLabel)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}
	if block != nil {
		X.Slice(0, n, 1, p).(*mat.Dense).Copy(block)
		labels = append(labels, blockLabels...)
	}

	y := mat.NewVecDense(n, d.Claims())
	offset := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		w := d.Record(i).Exposure
		if w <= 0 {
			return nil, errors.NewDataError("glm.buildDesign", i, "exposure", "exposure must be positive")
		}
		offset.SetVec(i, math.Log(w))
	}
	return &design{X: X, y: y, offset: offset, labels: labels}, nil
}
