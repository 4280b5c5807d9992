package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV reads results from a CSV stream with a header row.
func DecodeCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	results, err := resultsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &Dataset{Results: results}, nil
}

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []gradebook.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write(resultRow(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
