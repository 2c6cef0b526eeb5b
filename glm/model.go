// Package glm fits Poisson regression models with a log link and a
// log-exposure offset, the standard form for claim-frequency modeling. The
// fitter is iteratively reweighted least squares (IRLS) on gonum matrices.
package glm

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/core/model"
	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/metrics"
	"github.com/insurekit/claimfreq/pkg/errors"
	"github.com/insurekit/claimfreq/pkg/log"
	"github.com/insurekit/claimfreq/preprocessing"
)

// PoissonGLM is a Poisson regression of claim counts on dummy-coded factor
// terms with log(exposure) as a fixed offset.
//
// A fitted PoissonGLM retains the training design and IRLS working state
// alongside the coefficients. Compact() converts it to the reduced
// prediction-only representation.
type PoissonGLM struct {
	state   *model.StateManager
	maxIter int
	tol     float64

	// Fit results.
	terms   []string
	labels  []string
	aliased []string // labels of dropped collinear columns
	rank    int      // estimated coefficients, aliased excluded
	coef    *mat.VecDense
	compact *CompactModel

	deviance     float64
	nullDeviance float64
	logLik       float64
	aic          float64
	iterations   int

	// Training caches, deliberately bulky. These are what Compact drops.
	design   *design
	fittedMu *mat.VecDense
	linPred  *mat.VecDense
	weights  *mat.VecDense
}

// Option configures a PoissonGLM.
type Option func(*PoissonGLM)

// WithMaxIter sets the IRLS iteration budget (default 25).
func WithMaxIter(n int) Option {
	return func(g *PoissonGLM) { g.maxIter = n }
}

// WithTol sets the relative deviance-change convergence tolerance
// (default 1e-8).
func WithTol(tol float64) Option {
	return func(g *PoissonGLM) { g.tol = tol }
}

// NewPoissonGLM creates an unfitted model.
func NewPoissonGLM(opts ...Option) *PoissonGLM {
	g := &PoissonGLM{
		state:   model.NewStateManager("PoissonGLM"),
		maxIter: 25,
		tol:     1e-8,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fit fits the model on the training dataset using the given factor terms.
// An empty term list fits the intercept-only model. Singular designs and
// exhausted iteration budgets are errors; there is no partial result.
func (g *PoissonGLM) Fit(train *dataset.Dataset, terms []string) error {
	start := time.Now()
	enc := preprocessing.NewFactorEncoder(terms...)
	if len(terms) > 0 {
		if err := enc.Fit(train); err != nil {
			return err
		}
	}
	dsg, err := buildDesign(train, enc, terms)
	if err != nil {
		return err
	}
	n, pFull := dsg.X.Dims()

	// Drop columns aliased with earlier ones, as glm implementations
	// conventionally do; their coefficients are reported as zero. The sex
	// and female-flag factors of the policy schema are one such pair.
	X := dsg.X
	kept := make([]int, pFull)
	for j := range kept {
		kept[j] = j
	}
	var aliasedLabels []string
	if keptIdx, aliasedIdx := aliasedColumns(dsg.X); len(aliasedIdx) > 0 {
		X = selectColumns(dsg.X, keptIdx)
		kept = keptIdx
		for _, j := range aliasedIdx {
			aliasedLabels = append(aliasedLabels, dsg.labels[j])
		}
	}
	p := len(kept)

	// IRLS. Start from mu = y + 0.5 so zero counts have a finite link value.
	mu := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		mu.SetVec(i, dsg.y.AtVec(i)+0.5)
	}
	eta := logLink(mu)

	coef := mat.NewVecDense(p, nil)
	devOld := math.Inf(1)
	var dev float64
	converged := false

	z := mat.NewVecDense(n, nil)
	w := mat.NewVecDense(n, nil)
	Xw := mat.NewDense(n, p, nil)
	zw := mat.NewVecDense(n, nil)

	for iter := 1; iter <= g.maxIter; iter++ {
		// Working response and weights for the log link: z = eta - offset +
		// (y - mu)/mu, W = mu.
		for i := 0; i < n; i++ {
			m := mu.AtVec(i)
			z.SetVec(i, eta.AtVec(i)-dsg.offset.AtVec(i)+(dsg.y.AtVec(i)-m)/m)
			w.SetVec(i, m)
		}

		// Solve the weighted least squares step via QR of sqrt(W)X.
		for i := 0; i < n; i++ {
			sw := math.Sqrt(w.AtVec(i))
			for j := 0; j < p; j++ {
				Xw.Set(i, j, sw*X.At(i, j))
			}
			zw.SetVec(i, sw*z.AtVec(i))
		}
		var qr mat.QR
		qr.Factorize(Xw)
		if err := qr.SolveVecTo(coef, false, zw); err != nil {
			return errors.Wrap(errors.ErrSingularDesign, "PoissonGLM.Fit")
		}

		eta.MulVec(X, coef)
		eta.AddVec(eta, dsg.offset)
		mu = logLinkInverse(eta)

		dev, err = metrics.PoissonDeviance(dsg.y, mu)
		if err != nil {
			return err
		}
		g.iterations = iter
		if math.Abs(dev-devOld)/(math.Abs(dev)+0.1) < g.tol {
			converged = true
			break
		}
		devOld = dev
	}
	if !converged {
		return errors.NewConvergenceError("IRLS", g.maxIter, dev)
	}

	levels, err := levelMapFor(enc, terms)
	if err != nil {
		return err
	}
	// Expand back to the full label set, zero at aliased positions, so the
	// prediction path is independent of what was dropped.
	fullCoef := mat.NewVecDense(pFull, nil)
	for i, j := range kept {
		fullCoef.SetVec(j, coef.AtVec(i))
	}

	g.terms = append([]string(nil), terms...)
	g.labels = dsg.labels
	g.aliased = aliasedLabels
	g.rank = p
	g.coef = fullCoef
	g.design = dsg
	g.fittedMu = mu
	g.linPred = eta
	g.weights = w
	g.deviance = dev
	g.nullDeviance = nullDeviance(dsg)
	g.logLik = poissonLogLik(dsg.y, mu)
	g.aic = -2*g.logLik + 2*float64(p)
	g.compact = &CompactModel{
		Family:       FamilyPoisson,
		Link:         LinkLog,
		OffsetLogExp: true,
		Terms:        append([]string(nil), terms...),
		Levels:       levels,
		Labels:       append([]string(nil), dsg.labels...),
		Coefficients: vecValues(fullCoef),
	}
	g.state.SetFitted(n, pFull)

	log.ForComponent("glm").Debug("model fitted",
		slog.String(log.ModelNameKey, "PoissonGLM"),
		slog.String(log.OperationKey, "fit"),
		slog.Int(log.RowsKey, n),
		slog.Int(log.ColumnsKey, pFull),
		slog.Any("glm.aliased", aliasedLabels),
		slog.Int(log.IterationKey, g.iterations),
		slog.Float64(log.DevianceKey, g.deviance),
		slog.Float64(log.AICKey, g.aic),
		slog.Float64(log.DurationMsKey, float64(time.Since(start).Microseconds())/1000),
	)
	return nil
}

// Predict returns the predicted mean claim count for each record, i.e. the
// response-scale prediction including the log-exposure offset. Input records
// must use only factor levels seen during fitting.
func (g *PoissonGLM) Predict(d *dataset.Dataset) (*mat.VecDense, error) {
	if err := g.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	// Full and compact predictions share this one code path.
	return g.compact.Predict(d)
}

// Terms returns the fitted factor terms in design order.
func (g *PoissonGLM) Terms() []string {
	return append([]string(nil), g.terms...)
}

// Coefficients returns the fitted coefficients with their design labels,
// intercept first.
func (g *PoissonGLM) Coefficients() ([]string, []float64, error) {
	if err := g.state.RequireFitted("Coefficients"); err != nil {
		return nil, nil, err
	}
	return append([]string(nil), g.labels...), vecValues(g.coef), nil
}

// Deviance returns the residual deviance of the fit.
func (g *PoissonGLM) Deviance() (float64, error) {
	if err := g.state.RequireFitted("Deviance"); err != nil {
		return 0, err
	}
	return g.deviance, nil
}

// NullDeviance returns the deviance of the offset-only null model on the
// training data.
func (g *PoissonGLM) NullDeviance() (float64, error) {
	if err := g.state.RequireFitted("NullDeviance"); err != nil {
		return 0, err
	}
	return g.nullDeviance, nil
}

// AIC returns the Akaike information criterion of the fit.
func (g *PoissonGLM) AIC() (float64, error) {
	if err := g.state.RequireFitted("AIC"); err != nil {
		return 0, err
	}
	return g.aic, nil
}

// LogLik returns the Poisson log-likelihood of the fit.
func (g *PoissonGLM) LogLik() (float64, error) {
	if err := g.state.RequireFitted("LogLik"); err != nil {
		return 0, err
	}
	return g.logLik, nil
}

// Aliased returns the labels of design columns dropped for collinearity.
// Their coefficients are zero.
func (g *PoissonGLM) Aliased() []string {
	return append([]string(nil), g.aliased...)
}

// Iterations returns the number of IRLS iterations the fit used.
func (g *PoissonGLM) Iterations() int {
	return g.iterations
}

// Fitted returns the training fitted means. This cache is part of the full
// fit object only; it does not survive Compact.
func (g *PoissonGLM) Fitted() (*mat.VecDense, error) {
	if err := g.state.RequireFitted("Fitted"); err != nil {
		return nil, err
	}
	return copyVec(g.fittedMu), nil
}

// nullDeviance computes the deviance of the offset-only model, whose single
// coefficient has the closed form log(sum(y)/sum(exposure)).
func nullDeviance(dsg *design) float64 {
	var sumY, sumExp float64
	n := dsg.y.Len()
	for i := 0; i < n; i++ {
		sumY += dsg.y.AtVec(i)
		sumExp += math.Exp(dsg.offset.AtVec(i))
	}
	rate := sumY / sumExp
	mu := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		mu.SetVec(i, rate*math.Exp(dsg.offset.AtVec(i)))
	}
	dev, err := metrics.PoissonDeviance(dsg.y, mu)
	if err != nil {
		return math.NaN()
	}
	return dev
}

func levelMapFor(enc *preprocessing.FactorEncoder, terms []string) (map[string][]string, error) {
	if len(terms) == 0 {
		return map[string][]string{}, nil
	}
	return enc.LevelMap()
}

func vecValues(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func copyVec(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}
