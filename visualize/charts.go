// Package visualize renders the descriptive charts of the claim-frequency
// analysis with gonum/plot: the exposure histogram and the exposure-weighted
// claim count bar charts. The charts are observational; nothing downstream
// consumes them.
package visualize

import (
	"fmt"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/insurekit/claimfreq/dataset"
	"github.com/insurekit/claimfreq/pkg/errors"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ExposureHistogram saves a histogram of the exposure weights to path.
func ExposureHistogram(d *dataset.Dataset, path string) error {
	if d.Len() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "visualize.ExposureHistogram")
	}
	p := plot.New()
	p.Title.Text = "Exposure weights"
	p.X.Label.Text = "exposure (policy-years)"
	p.Y.Label.Text = "policies"

	h, err := plotter.NewHist(plotter.Values(d.Exposure()), 16)
	if err != nil {
		return errors.Wrap(err, "failed to build exposure histogram")
	}
	p.Add(h)
	return errors.Wrap(p.Save(chartWidth, chartHeight, path), "failed to save exposure histogram")
}

// ClaimsBar saves a bar chart of total exposure per observed claim count to
// path.
func ClaimsBar(d *dataset.Dataset, path string) error {
	if d.Len() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "visualize.ClaimsBar")
	}
	values, labels := exposureByClaims(d.Records())
	return saveBar(values, labels, "Claim counts weighted by exposure", path)
}

// ClaimsBarByNCD saves one exposure-weighted claim count bar chart per
// no-claims-discount level into dir, named claims_ncd_<level>.png. It returns
// the written file paths in level order.
func ClaimsBarByNCD(d *dataset.Dataset, dir string) ([]string, error) {
	if d.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "visualize.ClaimsBarByNCD")
	}
	byLevel := make(map[string][]dataset.Record)
	for _, r := range d.Records() {
		byLevel[r.NCD] = append(byLevel[r.NCD], r)
	}
	levels := make([]string, 0, len(byLevel))
	for lv := range byLevel {
		levels = append(levels, lv)
	}
	sort.Strings(levels)

	var paths []string
	for _, lv := range levels {
		values, labels := exposureByClaims(byLevel[lv])
		path := filepath.Join(dir, "claims_ncd_"+lv+".png")
		title := fmt.Sprintf("Claim counts weighted by exposure (NCD %s)", lv)
		if err := saveBar(values, labels, title, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// exposureByClaims sums exposure per claim count, from zero to the maximum
// observed count.
func exposureByClaims(records []dataset.Record) (plotter.Values, []string) {
	maxClaims := 0
	for _, r := range records {
		if r.Claims > maxClaims {
			maxClaims = r.Claims
		}
	}
	values := make(plotter.Values, maxClaims+1)
	labels := make([]string, maxClaims+1)
	for _, r := range records {
		values[r.Claims] += r.Exposure
	}
	for k := range labels {
		labels[k] = fmt.Sprintf("%d", k)
	}
	return values, labels
}

func saveBar(values plotter.Values, labels []string, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "claim count"
	p.Y.Label.Text = "total exposure"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "failed to build bar chart")
	}
	p.Add(bars)
	p.NominalX(labels...)
	return errors.Wrap(p.Save(chartWidth, chartHeight, path), "failed to save bar chart")
}
