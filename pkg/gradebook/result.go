// Package gradebook holds exam result records and the arithmetic reports
// are built from: summaries, grades, remarks, subject and class analysis,
// and the in-memory Book that answers student and class lookups.
package gradebook

import (
	"math"
	"strconv"
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/validate"
)

// Status is the recorded outcome of an exam.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// ParseStatus normalises free-form status text. Unknown text yields "".
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass", "passed", "p":
		return StatusPass
	case "fail", "failed", "f":
		return StatusFail
	}
	return ""
}

// Result is a single exam outcome for one student.
type Result struct {
	ID          string  `yaml:"id,omitempty" json:"id,omitempty"`
	ExamID      string  `yaml:"examId,omitempty" json:"examId,omitempty"`
	ExamName    string  `yaml:"examName" json:"examName" validate:"required"`
	StudentID   string  `yaml:"studentId" json:"studentId" validate:"required,studentid"`
	StudentName string  `yaml:"studentName" json:"studentName" validate:"required"`
	Class       string  `yaml:"class" json:"class" validate:"required"`
	Marks       float64 `yaml:"marks" json:"marks" validate:"gte=0,ltefield=TotalMarks"`
	TotalMarks  float64 `yaml:"totalMarks" json:"totalMarks" validate:"gt=0"`
	Status      Status  `yaml:"status,omitempty" json:"status,omitempty" validate:"omitempty,oneof=Pass Fail"`
	Date        string  `yaml:"date,omitempty" json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Percentage returns marks/totalMarks*100, or 0 when the total is not positive.
func (r Result) Percentage() float64 {
	if r.TotalMarks <= 0 {
		return 0
	}
	return r.Marks / r.TotalMarks * 100
}

// Passed reports the recorded status, falling back to passMark when the
// record has none.
func (r Result) Passed(passMark float64) bool {
	switch r.Status {
	case StatusPass:
		return true
	case StatusFail:
		return false
	}
	return r.Percentage() >= passMark
}

// StatusFor returns the recorded status or the one derived from passMark.
func (r Result) StatusFor(passMark float64) Status {
	if r.Passed(passMark) {
		return StatusPass
	}
	return StatusFail
}

// Validate returns translated constraint violations, or nil.
func (r Result) Validate() []string {
	return validate.Struct(r)
}

// Student is an optional roster profile keyed by the same ID as results.
type Student struct {
	ID          string `yaml:"id" json:"id" validate:"required,studentid"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Email       string `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	ParentName  string `yaml:"parentName,omitempty" json:"parentName,omitempty"`
	ParentEmail string `yaml:"parentEmail,omitempty" json:"parentEmail,omitempty" validate:"omitempty,email"`
	Grade       string `yaml:"grade,omitempty" json:"grade,omitempty"`
	DateOfBirth string `yaml:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Validate returns translated constraint violations, or nil.
func (s Student) Validate() []string {
	return validate.Struct(s)
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatPercent renders v to one decimal with a trailing percent sign.
// NaN and infinities render as 0.0%.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(Round1(v), 'f', 1, 64) + "%"
}

// FormatMarks renders a mark without a trailing ".0".
func FormatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
