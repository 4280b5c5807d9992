package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// Column aliases for header-row formats (CSV and XLSX), lower-cased with
// spaces and underscores removed.
var resultColumns = map[string]string{
	"id":          "id",
	"examid":      "examId",
	"examname":    "examName",
	"exam":        "examName",
	"subject":     "examName",
	"studentid":   "studentId",
	"studentname": "studentName",
	"name":        "studentName",
	"class":       "class",
	"grade":       "class",
	"marks":       "marks",
	"score":       "marks",
	"totalmarks":  "totalMarks",
	"maxscore":    "totalMarks",
	"total":       "totalMarks",
	"status":      "status",
	"date":        "date",
}

var studentColumns = map[string]string{
	"id":          "id",
	"studentid":   "id",
	"name":        "name",
	"email":       "email",
	"parentname":  "parentName",
	"parentemail": "parentEmail",
	"grade":       "grade",
	"class":       "grade",
	"dateofbirth": "dateOfBirth",
	"dob":         "dateOfBirth",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
	return h
}

// headerIndex maps canonical field names onto column positions.
func headerIndex(header []string, aliases map[string]string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		if field, ok := aliases[normalizeHeader(h)]; ok {
			if _, dup := idx[field]; !dup {
				idx[field] = i
			}
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, field string) string {
	i, ok := idx[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numberCell(row []string, idx map[string]int, field string, line int) (*float64, error) {
	s := cell(row, idx, field)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("row %d: %s %q is not a number", line, field, s)
	}
	return &v, nil
}

// resultsFromRows converts a header row plus data rows into results.
// Blank rows are skipped. line numbers are 1-based and count the header.
func resultsFromRows(rows [][]string) ([]gradebook.Result, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := headerIndex(rows[0], resultColumns)
	for _, required := range []string{"examName", "studentId", "marks", "totalMarks"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var out []gradebook.Result
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := n + 2
		marks, err := numberCell(row, idx, "marks", line)
		if err != nil {
			return nil, err
		}
		total, err := numberCell(row, idx, "totalMarks", line)
		if err != nil {
			return nil, err
		}
		raw := rawResult{
			ID:          cell(row, idx, "id"),
			ExamID:      cell(row, idx, "examId"),
			ExamName:    cell(row, idx, "examName"),
			StudentID:   cell(row, idx, "studentId"),
			StudentName: cell(row, idx, "studentName"),
			Class:       cell(row, idx, "class"),
			Marks:       marks,
			TotalMarks:  total,
			Status:      cell(row, idx, "status"),
			Date:        cell(row, idx, "date"),
		}
		out = append(out, raw.result())
	}
	return out, nil
}

func studentsFromRows(rows [][]string) []gradebook.Student {
	if len(rows) == 0 {
		return nil
	}
	idx := headerIndex(rows[0], studentColumns)
	var out []gradebook.Student
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, gradebook.Student{
			ID:          strings.ToUpper(cell(row, idx, "id")),
			Name:        cell(row, idx, "name"),
			Email:       cell(row, idx, "email"),
			ParentName:  cell(row, idx, "parentName"),
			ParentEmail: cell(row, idx, "parentEmail"),
			Grade:       cell(row, idx, "grade"),
			DateOfBirth: cell(row, idx, "dateOfBirth"),
		})
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ResultHeader is the column order used when writing results.
var ResultHeader = []string{
	"ID", "Exam ID", "Exam Name", "Student ID", "Student Name",
	"Class", "Marks", "Total Marks", "Status", "Date",
}

func resultRow(r gradebook.Result) []string {
	return []string{
		r.ID, r.ExamID, r.ExamName, r.StudentID, r.StudentName, r.Class,
		gradebook.FormatMarks(r.Marks), gradebook.FormatMarks(r.TotalMarks),
		string(r.Status), r.Date,
	}
}
