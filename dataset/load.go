package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// policies.csv is the bundled reference dataset: one row per policy period of
// a private motor portfolio, schema sex,female,private,ncd,agecat,vehage,
// exposure,claims.
//
//go:embed testdata/policies.csv
var referenceCSV []byte

// expected CSV header, in file order.
var csvHeader = []string{"sex", "female", "private", "ncd", "agecat", "vehage", "exposure", "claims"}

// LoadReference loads the bundled reference dataset.
func LoadReference() (*Dataset, error) {
	return LoadCSVReader(bytes.NewReader(referenceCSV))
}

// LoadCSV loads a policy dataset from a CSV file with the reference schema.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer f.Close()

	return LoadCSVReader(f)
}

// LoadCSVReader parses a policy dataset from r. The first row must be the
// header. Rows with non-positive exposure or negative claim counts are
// rejected.
func LoadCSVReader(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse dataset CSV")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset has no header row")
	}
	for i, name := range csvHeader {
		if rows[0][i] != name {
			return nil, errors.NewDataError("LoadCSVReader", 0, name, "unexpected header column "+rows[0][i])
		}
	}
	if len(rows) == 1 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset has no records")
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		exposure, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, errors.NewDataError("LoadCSVReader", i+1, "exposure", "not a number: "+row[6])
		}
		if exposure <= 0 {
			return nil, errors.NewDataError("LoadCSVReader", i+1, "exposure", "exposure must be positive")
		}
		claims, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, errors.NewDataError("LoadCSVReader", i+1, "claims", "not an integer: "+row[7])
		}
		if claims < 0 {
			return nil, errors.NewDataError("LoadCSVReader", i+1, "claims", "claim count must be non-negative")
		}
		records = append(records, Record{
			Sex:      row[0],
			Female:   row[1],
			Private:  row[2],
			NCD:      row[3],
			AgeCat:   row[4],
			VehAge:   row[5],
			Exposure: exposure,
			Claims:   claims,
		})
	}
	return &Dataset{records: records}, nil
}
