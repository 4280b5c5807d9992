package dataset

import (
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// rawResult accepts both the exam-results field names (examName, marks,
// totalMarks) and the student-exam names (subject, score, maxScore).
type rawResult struct {
	ID          string   `yaml:"id" json:"id"`
	ExamID      string   `yaml:"examId" json:"examId"`
	ExamName    string   `yaml:"examName" json:"examName"`
	Subject     string   `yaml:"subject" json:"subject"`
	StudentID   string   `yaml:"studentId" json:"studentId"`
	StudentName string   `yaml:"studentName" json:"studentName"`
	Class       string   `yaml:"class" json:"class"`
	Marks       *float64 `yaml:"marks" json:"marks"`
	Score       *float64 `yaml:"score" json:"score"`
	TotalMarks  *float64 `yaml:"totalMarks" json:"totalMarks"`
	MaxScore    *float64 `yaml:"maxScore" json:"maxScore"`
	Status      string   `yaml:"status" json:"status"`
	Date        string   `yaml:"date" json:"date"`
}

func (r rawResult) result() gradebook.Result {
	out := gradebook.Result{
		ID:          strings.TrimSpace(r.ID),
		ExamID:      strings.TrimSpace(r.ExamID),
		ExamName:    firstNonEmpty(r.ExamName, r.Subject),
		StudentID:   strings.ToUpper(strings.TrimSpace(r.StudentID)),
		StudentName: strings.TrimSpace(r.StudentName),
		Class:       strings.TrimSpace(r.Class),
		Marks:       firstNumber(r.Marks, r.Score),
		TotalMarks:  firstNumber(r.TotalMarks, r.MaxScore),
		Date:        strings.TrimSpace(r.Date),
	}
	out.Status = gradebook.ParseStatus(r.Status)
	if out.Status == "" && strings.TrimSpace(r.Status) != "" {
		// keep unrecognised text so validation reports it
		out.Status = gradebook.Status(r.Status)
	}
	return out
}

// rawStudent is a roster profile, optionally carrying its own exams.
type rawStudent struct {
	gradebook.Student `yaml:",inline"`
	Exams             []rawResult `yaml:"exams" json:"exams"`
}

type rawDataset struct {
	Students []rawStudent `yaml:"students" json:"students"`
	Results  []rawResult  `yaml:"results" json:"results"`
}

// dataset flattens student-embedded exams after the top-level results.
func (raw rawDataset) dataset() *Dataset {
	d := &Dataset{}
	for _, r := range raw.Results {
		d.Results = append(d.Results, r.result())
	}
	for _, s := range raw.Students {
		s.Student.ID = strings.ToUpper(strings.TrimSpace(s.Student.ID))
		d.Students = append(d.Students, s.Student)
		for _, e := range s.Exams {
			e.StudentID = firstNonEmpty(e.StudentID, s.Student.ID)
			e.StudentName = firstNonEmpty(e.StudentName, s.Student.Name)
			e.Class = firstNonEmpty(e.Class, s.Student.Grade)
			d.Results = append(d.Results, e.result())
		}
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}
