package glm

import (
	"log/slog"

	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/pkg/errors"
	"github.com/insurekit/claimfreq/pkg/log"
)

// StepMove records one accepted move of the stepwise search.
type StepMove struct {
	Added   string // term added, empty for a removal
	Removed string // term removed, empty for an addition
	AIC     float64
}

// Stepwise selects a subset of the candidate factor terms by greedy
// bidirectional search on AIC, bounded below by the intercept-only model and
// above by the full candidate set.
//
// Starting from the intercept-only model, every single-term addition and
// removal is refit and the move with the lowest AIC is accepted if it
// strictly improves on the current model; the search terminates when no move
// improves. Candidates are scanned in the given order, additions before
// removals, and ties keep the earliest move, so the selection is
// deterministic for a fixed candidate order. The search is a greedy local
// procedure and carries no global-optimality guarantee.
//
// The returned model is the final refit; the trace lists accepted moves.
func Stepwise(train *dataset.Dataset, candidates []string, opts ...Option) (*PoissonGLM, []StepMove, error) {
	if len(candidates) == 0 {
		return nil, nil, errors.NewValueError("Stepwise", "no candidate terms")
	}

	current := NewPoissonGLM(opts...)
	if err := current.Fit(train, nil); err != nil {
		return nil, nil, err
	}
	currentAIC, _ := current.AIC()
	logger := log.ForComponent("glm")
	logger.Debug("stepwise start",
		slog.String(log.OperationKey, "stepwise"),
		slog.Float64(log.AICKey, currentAIC),
	)

	var trace []StepMove
	for {
		var best *PoissonGLM
		bestAIC := currentAIC
		var bestMove StepMove

		// Additions, in candidate order.
		for _, cand := range candidates {
			if containsTerm(current.terms, cand) {
				continue
			}
			trial := NewPoissonGLM(opts...)
			if err := trial.Fit(train, appendTerm(current.terms, cand)); err != nil {
				return nil, nil, errors.Wrapf(err, "stepwise: adding term %s", cand)
			}
			if aic, _ := trial.AIC(); aic < bestAIC {
				best, bestAIC = trial, aic
				bestMove = StepMove{Added: cand, AIC: aic}
			}
		}
		// Removals, in current-model term order.
		for _, term := range current.terms {
			trial := NewPoissonGLM(opts...)
			if err := trial.Fit(train, removeTerm(current.terms, term)); err != nil {
				return nil, nil, errors.Wrapf(err, "stepwise: removing term %s", term)
			}
			if aic, _ := trial.AIC(); aic < bestAIC {
				best, bestAIC = trial, aic
				bestMove = StepMove{Removed: term, AIC: aic}
			}
		}

		if best == nil {
			break
		}
		current, currentAIC = best, bestAIC
		trace = append(trace, bestMove)
		logger.Debug("stepwise move accepted",
			slog.String(log.OperationKey, "stepwise"),
			slog.String("step.added", bestMove.Added),
			slog.String("step.removed", bestMove.Removed),
			slog.Float64(log.AICKey, bestAIC),
			slog.Any(log.TermsKey, current.Terms()),
		)
	}
	return current, trace, nil
}

func containsTerm(terms []string, t string) bool {
	for _, x := range terms {
		if x == t {
			return true
		}
	}
	return false
}

func appendTerm(terms []string, t string) []string {
	out := append([]string(nil), terms...)
	return append(out, t)
}

func removeTerm(terms []string, t string) []string {
	out := make([]string, 0, len(terms))
	for _, x := range terms {
		if x != t {
			out = append(out, x)
		}
	}
	return out
}
