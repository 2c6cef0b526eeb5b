package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// aliasTol is the relative R-diagonal threshold below which a design column
// is considered linearly dependent on the columns before it.
const aliasTol = 1e-10

// aliasedColumns partitions the column indices of X into linearly
// independent columns and aliased ones. A column is aliased when it lies in
// the span of the columns preceding it, detected by a vanishing diagonal in
// the unpivoted QR factor. Later columns lose to earlier ones, matching the
// convention of dropping the later duplicate of a collinear pair.
func aliasedColumns(X *mat.Dense) (kept, aliased []int) {
	_, p := X.Dims()
	var qr mat.QR
	qr.Factorize(X)
	var r mat.Dense
	qr.RTo(&r)

	maxDiag := 0.0
	for j := 0; j < p; j++ {
		if d := math.Abs(r.At(j, j)); d > maxDiag {
			maxDiag = d
		}
	}
	for j := 0; j < p; j++ {
		if math.Abs(r.At(j, j)) <= aliasTol*maxDiag {
			aliased = append(aliased, j)
		} else {
			kept = append(kept, j)
		}
	}
	return kept, aliased
}

// selectColumns copies the given columns of X into a new matrix.
func selectColumns(X *mat.Dense, cols []int) *mat.Dense {
	n, _ := X.Dims()
	out := mat.NewDense(n, len(cols), nil)
	for j, c := range cols {
		for i := 0; i < n; i++ {
			out.Set(i, j, X.At(i, c))
		}
	}
	return out
}
