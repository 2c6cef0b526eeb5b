package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// PoissonDeviance computes the Poisson residual deviance between observed
// counts and fitted means:
//
//	D = 2 * sum( y*log(y/mu) - (y - mu) )
//
// with the convention y*log(y/mu) = 0 when y = 0. Fitted means must be
// strictly positive.
func PoissonDeviance(yTrue, mu *mat.VecDense) (float64, error) {
	if yTrue == nil || mu == nil {
		return 0, errors.NewValueError("PoissonDeviance", "nil input vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("PoissonDeviance", "empty vector")
	}
	if mu.Len() != n {
		return 0, errors.NewDimensionError("PoissonDeviance", n, mu.Len(), 0)
	}

	terms := make([]float64, n)
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		m := mu.AtVec(i)
		if m <= 0 {
			return 0, errors.NewValueError("PoissonDeviance", "fitted mean must be positive")
		}
		if y < 0 {
			return 0, errors.NewValueError("PoissonDeviance", "observed count must be non-negative")
		}
		t := m - y
		if y > 0 {
			t += y * math.Log(y/m)
		}
		terms[i] = t
	}
	return 2 * floats.Sum(terms), nil
}
