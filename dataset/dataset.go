// Package dataset loads and prepares motor insurance policy records for
// claim-frequency modeling. A Dataset is immutable once loaded; derivation
// steps (Transform, Split) return new Dataset values.
package dataset

import (
	"github.com/insurekit/claimfreq/pkg/errors"
)

// Factor column names, in declaration order. This order is load-bearing: it
// fixes the design-matrix column layout and the candidate scan order of the
// stepwise search.
const (
	ColSex     = "sex"
	ColFemale  = "female"
	ColPrivate = "private"
	ColNCD     = "ncd"
	ColAgeCat  = "agecat"
	ColVehAge  = "vehage"
)

// FactorColumns lists the categorical predictor columns in canonical order.
func FactorColumns() []string {
	return []string{ColSex, ColFemale, ColPrivate, ColNCD, ColAgeCat, ColVehAge}
}

// Record is one policy-period observation.
type Record struct {
	Sex      string  // insured sex
	Female   string  // female flag
	Private  string  // private-vehicle flag
	NCD      string  // no-claims-discount category
	AgeCat   string  // policyholder age category
	VehAge   string  // vehicle-age category
	Exposure float64 // fraction of year covered, always > 0
	Claims   int     // claim count
}

// Factor returns the value of the named categorical column.
func (r Record) Factor(column string) (string, bool) {
	switch column {
	case ColSex:
		return r.Sex, true
	case ColFemale:
		return r.Female, true
	case ColPrivate:
		return r.Private, true
	case ColNCD:
		return r.NCD, true
	case ColAgeCat:
		return r.AgeCat, true
	case ColVehAge:
		return r.VehAge, true
	}
	return "", false
}

// Dataset is an ordered, read-only collection of records. The frequency
// column is only present on datasets produced by Transform.
type Dataset struct {
	records   []Record
	frequency []float64
}

// New creates a Dataset from records. The slice is copied.
func New(records []Record) *Dataset {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &Dataset{records: rs}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the i-th record.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of the underlying records.
func (d *Dataset) Records() []Record {
	rs := make([]Record, len(d.records))
	copy(rs, d.records)
	return rs
}

// Exposure returns the exposure weights as a new slice.
func (d *Dataset) Exposure() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = r.Exposure
	}
	return out
}

// Claims returns the claim counts as a new float64 slice.
func (d *Dataset) Claims() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = float64(r.Claims)
	}
	return out
}

// Factor returns the values of the named categorical column as a new slice.
func (d *Dataset) Factor(column string) ([]string, error) {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		v, ok := r.Factor(column)
		if !ok {
			return nil, errors.NewValueError("Dataset.Factor", "unknown column "+column)
		}
		out[i] = v
	}
	return out, nil
}

// Frequency returns the derived per-record claim frequency. It is only
// available on datasets produced by Transform.
func (d *Dataset) Frequency() ([]float64, error) {
	if d.frequency == nil {
		return nil, errors.NewValueError("Dataset.Frequency", "frequency not derived; call Transform first")
	}
	out := make([]float64, len(d.frequency))
	copy(out, d.frequency)
	return out, nil
}

// Transform derives the modeling dataset: the categorical columns keep their
// observed level strings (treated as unordered factors downstream) and a
// frequency column claims/exposure is computed. The receiver is unchanged.
func (d *Dataset) Transform() (*Dataset, error) {
	out := New(d.records)
	out.frequency = make([]float64, len(out.records))
	for i, r := range out.records {
		if r.Exposure <= 0 {
			return nil, errors.NewDataError("Dataset.Transform", i, "exposure", "exposure must be positive")
		}
		out.frequency[i] = float64(r.Claims) / r.Exposure
	}
	return out, nil
}

// subset builds a Dataset from the given row indices, carrying the frequency
// column when present.
func (d *Dataset) subset(indices []int) *Dataset {
	out := &Dataset{records: make([]Record, len(indices))}
	if d.frequency != nil {
		out.frequency = make([]float64, len(indices))
	}
	for i, idx := range indices {
		out.records[i] = d.records[idx]
		if d.frequency != nil {
			out.frequency[i] = d.frequency[idx]
		}
	}
	return out
}
