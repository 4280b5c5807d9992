// Package feedback produces the free-text sections of a report, either from
// an OpenAI-compatible completion service or from deterministic templates.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// Variant selects which sections are requested.
type Variant string

const (
	// VariantAcademic asks for academic, strengths, challenges and
	// recommendations.
	VariantAcademic Variant = "academic"
	// VariantStakeholder asks for notes addressed to the student, the
	// parents and the teachers.
	VariantStakeholder Variant = "stakeholder"
	// VariantNarrative asks for free text.
	VariantNarrative Variant = "narrative"
)

// ParseVariant maps a config or request string onto a Variant. Blank selects
// the academic variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantAcademic, nil
	case VariantAcademic, VariantStakeholder, VariantNarrative:
		return v, nil
	}
	return "", fmt.Errorf("unknown feedback variant %q", s)
}

// Section is one titled block of feedback text.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Feedback is the outcome of one generation.
type Feedback struct {
	Variant  Variant   `json:"variant"`
	Sections []Section `json:"sections"`
	// Fallback is set when the sections came from templates instead of the
	// completion service.
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Section returns the section with key, if present.
func (f *Feedback) Section(key string) (Section, bool) {
	for _, s := range f.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Request describes the student whose results need commenting on.
type Request struct {
	StudentID   string
	StudentName string
	Class       string
	Grade       string
	Results     []gradebook.Result
	Variant     Variant
	PassMark    float64
}

// Provider generates feedback from an external service.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Feedback, error)
}

// sectionSpec is a known JSON key with its title and fallback text.
type sectionSpec struct {
	key      string
	title    string
	fallback string
}

var variantSections = map[Variant][]sectionSpec{
	VariantAcademic: {
		{"academic", "Academic Progress", "Academic progress comments are not available for this report."},
		{"strengths", "Strengths", "Strengths could not be summarised for this report."},
		{"challenges", "Areas for Improvement", "Areas for improvement could not be summarised for this report."},
		{"recommendations", "Recommendations", "Please discuss study recommendations with the class teacher."},
	},
	VariantStakeholder: {
		{"studentFeedback", "Feedback for the Student", "Keep working steadily and ask your teachers for help where needed."},
		{"parentFeedback", "Feedback for Parents", "Please contact the school to discuss your child's progress."},
		{"teacherNotes", "Notes for Teachers", "No additional notes were generated for this student."},
	},
}

// Keys lists the JSON keys requested for v. The narrative variant has none.
func Keys(v Variant) []string {
	specs := variantSections[v]
	keys := make([]string, len(specs))
	for i, s := range specs {
		keys[i] = s.key
	}
	return keys
}
