package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPoissonDeviance(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		mu      []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Exact fit",
			yTrue: []float64{1, 2, 3},
			mu:    []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "Zero count",
			yTrue: []float64{0},
			mu:    []float64{0.5},
			want:  1.0, // 2*(mu - y) with the y*log(y/mu) term dropped
		},
		{
			name:  "Known value",
			yTrue: []float64{2},
			mu:    []float64{1},
			want:  2 * (1 - 2 + 2*math.Log(2)),
		},
		{
			name:    "Non-positive fitted mean",
			yTrue:   []float64{1},
			mu:      []float64{0},
			wantErr: true,
		},
		{
			name:    "Negative count",
			yTrue:   []float64{-1},
			mu:      []float64{1},
			wantErr: true,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{1, 2},
			mu:      []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			mu := mat.NewVecDense(len(tt.mu), tt.mu)

			got, err := PoissonDeviance(yTrue, mu)
			if (err != nil) != tt.wantErr {
				t.Errorf("PoissonDeviance() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PoissonDeviance() = %v, want %v", got, tt.want)
			}
		})
	}
}
