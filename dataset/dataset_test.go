package dataset

import (
	"math"
	"strings"
	"testing"
)

func TestLoadReference(t *testing.T) {
	d, err := LoadReference()
	if err != nil {
		t.Fatalf("LoadReference() error = %v", err)
	}
	if d.Len() == 0 {
		t.Fatal("LoadReference() returned empty dataset")
	}
	for i := 0; i < d.Len(); i++ {
		r := d.Record(i)
		if r.Exposure <= 0 {
			t.Errorf("record %d: exposure %v not positive", i, r.Exposure)
		}
		if r.Claims < 0 {
			t.Errorf("record %d: negative claim count %d", i, r.Claims)
		}
	}
}

func TestLoadCSVReader(t *testing.T) {
	header := "sex,female,private,ncd,agecat,vehage,exposure,claims\n"
	tests := []struct {
		name    string
		csv     string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Valid rows",
			csv:     header + "M,no,yes,0,A,0-3,0.5,1\nF,yes,yes,3,C,4-7,1.0,0\n",
			wantLen: 2,
		},
		{
			name:    "Zero exposure rejected",
			csv:     header + "M,no,yes,0,A,0-3,0.0,1\n",
			wantErr: true,
		},
		{
			name:    "Negative claims rejected",
			csv:     header + "M,no,yes,0,A,0-3,0.5,-1\n",
			wantErr: true,
		},
		{
			name:    "Non-numeric exposure",
			csv:     header + "M,no,yes,0,A,0-3,abc,1\n",
			wantErr: true,
		},
		{
			name:    "Wrong header",
			csv:     "gender,female,private,ncd,agecat,vehage,exposure,claims\nM,no,yes,0,A,0-3,0.5,1\n",
			wantErr: true,
		},
		{
			name:    "Header only",
			csv:     header,
			wantErr: true,
		},
		{
			name:    "Empty input",
			csv:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := LoadCSVReader(strings.NewReader(tt.csv))
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadCSVReader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Len() != tt.wantLen {
				t.Errorf("LoadCSVReader() len = %d, want %d", d.Len(), tt.wantLen)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	src := New([]Record{
		{Sex: "M", Female: "no", Private: "yes", NCD: "0", AgeCat: "A", VehAge: "0-3", Exposure: 0.5, Claims: 1},
		{Sex: "F", Female: "yes", Private: "yes", NCD: "3", AgeCat: "C", VehAge: "4-7", Exposure: 0.25, Claims: 2},
	})

	if _, err := src.Frequency(); err == nil {
		t.Error("Frequency() on untransformed dataset: want error, got nil")
	}

	got, err := src.Transform()
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	freq, err := got.Frequency()
	if err != nil {
		t.Fatalf("Frequency() error = %v", err)
	}
	want := []float64{2.0, 8.0}
	for i := range want {
		if math.Abs(freq[i]-want[i]) > 1e-12 {
			t.Errorf("frequency[%d] = %v, want %v", i, freq[i], want[i])
		}
	}

	// The source dataset must be untouched.
	if _, err := src.Frequency(); err == nil {
		t.Error("Transform() mutated the source dataset")
	}
}

func TestTransformZeroExposure(t *testing.T) {
	src := New([]Record{
		{Sex: "M", Female: "no", Private: "yes", NCD: "0", AgeCat: "A", VehAge: "0-3", Exposure: 0, Claims: 0},
	})
	if _, err := src.Transform(); err == nil {
		t.Error("Transform() with zero exposure: want error, got nil")
	}
}

func TestFactorColumn(t *testing.T) {
	d := New([]Record{
		{Sex: "M", Female: "no", Private: "yes", NCD: "0", AgeCat: "A", VehAge: "0-3", Exposure: 1, Claims: 0},
	})
	got, err := d.Factor(ColNCD)
	if err != nil {
		t.Fatalf("Factor() error = %v", err)
	}
	if got[0] != "0" {
		t.Errorf("Factor(ncd)[0] = %q, want %q", got[0], "0")
	}
	if _, err := d.Factor("nope"); err == nil {
		t.Error("Factor() with unknown column: want error, got nil")
	}
}
