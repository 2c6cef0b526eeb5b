package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/insurekit/claimfreq/dataset"
)

func chartData() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		{Sex: "M", Female: "no", Private: "yes", NCD: "0", AgeCat: "A", VehAge: "0-3", Exposure: 0.5, Claims: 0},
		{Sex: "F", Female: "yes", Private: "yes", NCD: "0", AgeCat: "B", VehAge: "4-7", Exposure: 1.0, Claims: 1},
		{Sex: "M", Female: "no", Private: "no", NCD: "1", AgeCat: "C", VehAge: "8-11", Exposure: 0.75, Claims: 2},
		{Sex: "F", Female: "yes", Private: "yes", NCD: "1", AgeCat: "A", VehAge: "0-3", Exposure: 0.25, Claims: 0},
	})
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart %s not written: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("chart %s is empty", path)
	}
}

func TestExposureHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exposure.png")
	if err := ExposureHistogram(chartData(), path); err != nil {
		t.Fatalf("ExposureHistogram() error = %v", err)
	}
	assertPNG(t, path)
}

func TestClaimsBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.png")
	if err := ClaimsBar(chartData(), path); err != nil {
		t.Fatalf("ClaimsBar() error = %v", err)
	}
	assertPNG(t, path)
}

func TestClaimsBarByNCD(t *testing.T) {
	dir := t.TempDir()
	paths, err := ClaimsBarByNCD(chartData(), dir)
	if err != nil {
		t.Fatalf("ClaimsBarByNCD() error = %v", err)
	}
	if len(paths) != 2 { // NCD levels 0 and 1
		t.Fatalf("wrote %d charts, want 2", len(paths))
	}
	for _, p := range paths {
		assertPNG(t, p)
	}
}

func TestEmptyDataset(t *testing.T) {
	empty := dataset.New(nil)
	dir := t.TempDir()
	if err := ExposureHistogram(empty, filepath.Join(dir, "a.png")); err == nil {
		t.Error("ExposureHistogram() on empty dataset: want error, got nil")
	}
	if err := ClaimsBar(empty, filepath.Join(dir, "b.png")); err == nil {
		t.Error("ClaimsBar() on empty dataset: want error, got nil")
	}
	if _, err := ClaimsBarByNCD(empty, dir); err == nil {
		t.Error("ClaimsBarByNCD() on empty dataset: want error, got nil")
	}
}
