package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Family and link identifiers carried by fitted models. Only the Poisson
// family with a log link is implemented; the identifiers exist so compact
// models serialize a complete specification.
const (
	FamilyPoisson = "poisson"
	LinkLog       = "log"
)

// poissonLogLik returns the Poisson log-likelihood of counts y under fitted
// means mu.
func poissonLogLik(y, mu *mat.VecDense) float64 {
	var ll float64
	for i := 0; i < y.Len(); i++ {
		ll += distuv.Poisson{Lambda: mu.AtVec(i)}.LogProb(y.AtVec(i))
	}
	return ll
}

// logLink applies the log link to a mean vector in place.
func logLink(mu *mat.VecDense) *mat.VecDense {
	eta := mat.NewVecDense(mu.Len(), nil)
	for i := 0; i < mu.Len(); i++ {
		eta.SetVec(i, math.Log(mu.AtVec(i)))
	}
	return eta
}

// logLinkInverse maps a linear predictor back to the mean scale.
func logLinkInverse(eta *mat.VecDense) *mat.VecDense {
	mu := mat.NewVecDense(eta.Len(), nil)
	for i := 0; i < eta.Len(); i++ {
		mu.SetVec(i, math.Exp(eta.AtVec(i)))
	}
	return mu
}
