package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names read from and written to workbooks.
const (
	ResultsSheet  = "Results"
	StudentsSheet = "Students"
)

func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := ResultsSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		// fall back to the first sheet for single-sheet exports
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	results, err := resultsFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	d := &Dataset{Results: results}

	if idx, err := f.GetSheetIndex(StudentsSheet); err == nil && idx >= 0 {
		rows, err := f.GetRows(StudentsSheet)
		if err != nil {
			return nil, err
		}
		d.Students = studentsFromRows(rows)
	}
	return d, nil
}

// WriteXLSX exports results, and students when present, to a workbook.
func WriteXLSX(path string, d *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSheet(f, ResultsSheet, ResultHeader, len(d.Results), func(i int) []interface{} {
		r := d.Results[i]
		return []interface{}{
			r.ID, r.ExamID, r.ExamName, r.StudentID, r.StudentName, r.Class,
			r.Marks, r.TotalMarks, string(r.Status), r.Date,
		}
	}); err != nil {
		return err
	}
	if err := f.SetRowStyle(ResultsSheet, 1, 1, header); err != nil {
		return err
	}

	if len(d.Students) > 0 {
		if _, err := f.NewSheet(StudentsSheet); err != nil {
			return err
		}
		cols := []string{"ID", "Name", "Email", "Parent Name", "Parent Email", "Grade", "Date Of Birth"}
		if err := writeSheet(f, StudentsSheet, cols, len(d.Students), func(i int) []interface{} {
			s := d.Students[i]
			return []interface{}{s.ID, s.Name, s.Email, s.ParentName, s.ParentEmail, s.Grade, s.DateOfBirth}
		}); err != nil {
			return err
		}
		if err := f.SetRowStyle(StudentsSheet, 1, 1, header); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, row func(int) []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return err
		}
	}
	return nil
}
