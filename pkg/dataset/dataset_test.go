package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_SampleDataset(t *testing.T) {
	d, err := Load(filepath.Join("..", "..", "examples", "results.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Results) != 25 {
		t.Errorf("expected 25 results, got %d", len(d.Results))
	}
	if len(d.Students) != 5 {
		t.Errorf("expected 5 students, got %d", len(d.Students))
	}

	sel, err := d.Book().Lookup(gradebook.Query{Kind: gradebook.QueryClass, Value: "11th"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(sel.Groups) != 2 {
		t.Errorf("11th should have 2 students, got %d", len(sel.Groups))
	}
}

func TestLoad_YAMLWithEmbeddedExams(t *testing.T) {
	path := writeTemp(t, "students.yml", `
students:
  - id: stu010
    name: Amani Mwangi
    grade: Grade 7
    exams:
      - subject: Swahili
        score: 45
        maxScore: 50
        date: "2024-02-01"
      - subject: Mathematics
        score: 30
        maxScore: 100
`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(d.Results))
	}
	r := d.Results[0]
	if r.StudentID != "STU010" || r.StudentName != "Amani Mwangi" || r.Class != "Grade 7" {
		t.Errorf("exam did not inherit student identity: %+v", r)
	}
	if r.ExamName != "Swahili" || r.Marks != 45 || r.TotalMarks != 50 {
		t.Errorf("aliases not mapped: %+v", r)
	}
	if d.Students[0].ID != "STU010" {
		t.Errorf("student id should be upper-cased, got %q", d.Students[0].ID)
	}
}

func TestLoad_JSONArray(t *testing.T) {
	path := writeTemp(t, "results.json", `[
  {"examName":"Math","studentId":"STU1","studentName":"A","class":"10th","marks":85,"totalMarks":100,"status":"pass"},
  {"examName":"Eng","studentId":"STU1","studentName":"A","class":"10th","marks":30,"totalMarks":100,"status":"FAIL"}
]`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := gradebook.Summarize(d.Results, 50)
	if s.OverallText() != "57.5%" || s.Passed != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestLoad_CSV(t *testing.T) {
	path := writeTemp(t, "results.csv", `Student ID,Student Name,Class,Subject,Score,Max Score,Status,Date
STU001,John Doe,10th,Mathematics,92,100,Pass,2024-03-25

stu001,John Doe,10th,Biology,68,75,,2024-03-28
`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Results) != 2 {
		t.Fatalf("expected 2 results (blank line skipped), got %d", len(d.Results))
	}
	if d.Results[1].StudentID != "STU001" || d.Results[1].Status != "" {
		t.Errorf("unexpected second row %+v", d.Results[1])
	}
}

func TestLoad_CSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{
			name:    "missing column",
			content: "Student ID,Subject,Score\nSTU1,Math,3\n",
			code:    rerrors.ErrDataLoadFailed,
		},
		{
			name:    "bad number",
			content: "Student ID,Student Name,Class,Subject,Score,Max Score\nSTU1,A,10th,Math,ten,100\n",
			code:    rerrors.ErrDataLoadFailed,
		},
		{
			name:    "marks above total",
			content: "Student ID,Student Name,Class,Subject,Score,Max Score\nSTU1,A,10th,Math,120,100\n",
			code:    rerrors.ErrDataInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, "bad.csv", tt.content))
			if !rerrors.IsCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestLoad_InvalidRowContext(t *testing.T) {
	path := writeTemp(t, "bad.yaml", `
results:
  - examName: Math
    studentId: STU1
    studentName: A
    class: 10th
    marks: 5
    totalMarks: 10
  - examName: Math
    studentId: BOB
    studentName: B
    class: 10th
    marks: 5
    totalMarks: 10
`)
	_, err := Load(path)
	rerr, ok := rerrors.AsReportError(err)
	if !ok || rerr.Code != rerrors.ErrDataInvalid {
		t.Fatalf("expected DATA_INVALID, got %v", err)
	}
	if rerr.Context["row"] != "2" || rerr.Context["path"] != path {
		t.Errorf("unexpected context %v", rerr.Context)
	}
	if !strings.Contains(rerr.Message, "studentId must look like STU001") {
		t.Errorf("unexpected message %q", rerr.Message)
	}
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("results.txt")
	if !rerrors.IsCode(err, rerrors.ErrDataUnsupportedFormat) {
		t.Fatalf("expected DATA_UNSUPPORTED_FORMAT, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.xlsx"))
	rerr, ok := rerrors.AsReportError(err)
	if !ok || rerr.Code != rerrors.ErrDataLoadFailed {
		t.Fatalf("expected DATA_LOAD_FAILED, got %v", err)
	}
	if rerr.Context[rerrors.ContextFormat] != "xlsx" {
		t.Errorf("expected format context, got %v", rerr.Context)
	}
}

func sampleDataset() *Dataset {
	return &Dataset{
		Students: []gradebook.Student{{ID: "STU001", Name: "John Doe", ParentName: "Jane Doe", Grade: "10th"}},
		Results: []gradebook.Result{
			{ExamName: "Mathematics", StudentID: "STU001", StudentName: "John Doe", Class: "10th", Marks: 92, TotalMarks: 100, Status: gradebook.StatusPass, Date: "2024-03-25"},
			{ExamName: "Biology", StudentID: "STU001", StudentName: "John Doe", Class: "10th", Marks: 67.5, TotalMarks: 75, Status: gradebook.StatusPass},
		},
	}
}

func TestSaveAndLoad_Formats(t *testing.T) {
	for _, ext := range []string{".xlsx", ".csv", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "export"+ext)
			if err := Save(path, sampleDataset()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			d, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(d.Results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(d.Results))
			}
			if d.Results[1].Marks != 67.5 || d.Results[1].ExamName != "Biology" {
				t.Errorf("unexpected record %+v", d.Results[1])
			}
			if ext != ".csv" && (len(d.Students) != 1 || d.Students[0].ParentName != "Jane Doe") {
				t.Errorf("students not preserved: %+v", d.Students)
			}
		})
	}
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleDataset().Results[:1]); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Exam ID,Exam Name") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Mathematics,STU001,John Doe,10th,92,100,Pass") {
		t.Errorf("unexpected row %q", lines[1])
	}
}
