// Package dataset loads exam results and student profiles from YAML, JSON,
// CSV and XLSX files into gradebook records.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// Dataset is the decoded content of a results file.
type Dataset struct {
	Students []gradebook.Student `yaml:"students,omitempty" json:"students,omitempty"`
	Results  []gradebook.Result  `yaml:"results" json:"results"`
}

// Book indexes the dataset for lookups.
func (d *Dataset) Book() *gradebook.Book {
	return gradebook.NewBook(d.Results, d.Students)
}

// Format names a supported file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf maps a file extension onto a Format.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	}
	return "", false
}

// Load reads path using the decoder for its extension and validates every
// record.
func Load(path string) (*Dataset, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, rerrors.UnsupportedFormat(path, filepath.Ext(path))
	}

	var (
		d   *Dataset
		err error
	)
	switch format {
	case FormatYAML:
		d, err = loadYAML(path)
	case FormatJSON:
		d, err = loadJSON(path)
	case FormatCSV:
		d, err = loadCSV(path)
	case FormatXLSX:
		d, err = loadXLSX(path)
	}
	if err != nil {
		if _, ok := rerrors.AsReportError(err); ok {
			return nil, err
		}
		return nil, rerrors.DataLoadFailed(path, string(format), err)
	}
	if err := d.Validate(); err != nil {
		return nil, err.WithContext("path", path)
	}
	return d, nil
}

// Validate checks every student and result, reporting the first bad row.
func (d *Dataset) Validate() *rerrors.ReportError {
	for i, s := range d.Students {
		if msgs := s.Validate(); msgs != nil {
			return invalidRow("students", i, msgs)
		}
	}
	for i, r := range d.Results {
		if msgs := r.Validate(); msgs != nil {
			return invalidRow("results", i, msgs)
		}
	}
	return nil
}

func invalidRow(section string, i int, msgs []string) *rerrors.ReportError {
	return rerrors.Data(rerrors.ErrDataInvalid, fmt.Sprintf("invalid %s record %d: %s", section, i+1, strings.Join(msgs, "; "))).
		WithContext("section", section).
		WithContext("row", fmt.Sprint(i+1))
}

// Save writes d to path in the format named by its extension. CSV output
// carries results only.
func Save(path string, d *Dataset) error {
	format, ok := FormatOf(path)
	if !ok {
		return rerrors.UnsupportedFormat(path, filepath.Ext(path))
	}

	var err error
	switch format {
	case FormatXLSX:
		err = WriteXLSX(path, d)
	case FormatCSV:
		err = writeFile(path, func(w io.Writer) error { return WriteCSV(w, d.Results) })
	case FormatYAML:
		err = writeFile(path, func(w io.Writer) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(d); err != nil {
				return err
			}
			return enc.Close()
		})
	case FormatJSON:
		err = writeFile(path, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		})
	}
	if err != nil {
		return rerrors.WriteFailed(path, err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
