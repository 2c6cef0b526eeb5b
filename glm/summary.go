package glm

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Summary renders a coefficient and fit-statistic table for the fitted model.
func (g *PoissonGLM) Summary() (string, error) {
	if err := g.state.RequireFitted("Summary"); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Poisson GLM (log link, log-exposure offset)\n")
	if len(g.terms) == 0 {
		fmt.Fprintf(&sb, "Terms: (intercept only)\n\n")
	} else {
		fmt.Fprintf(&sb, "Terms: %s\n\n", strings.Join(g.terms, " + "))
	}

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Coefficient\tEstimate")
	for i, label := range g.labels {
		if containsTerm(g.aliased, label) {
			fmt.Fprintf(tw, "%s\t(aliased)\n", label)
			continue
		}
		fmt.Fprintf(tw, "%s\t% .6f\n", label, g.coef.AtVec(i))
	}
	tw.Flush()

	nRows, _ := g.state.Dimensions()
	fmt.Fprintf(&sb, "\nNull deviance:     %.4f\n", g.nullDeviance)
	fmt.Fprintf(&sb, "Residual deviance: %.4f on %d degrees of freedom\n", g.deviance, nRows-g.rank)
	fmt.Fprintf(&sb, "AIC: %.4f\n", g.aic)
	fmt.Fprintf(&sb, "IRLS iterations: %d\n", g.iterations)
	return sb.String(), nil
}
