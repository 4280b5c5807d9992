package feedback

import (
	"strings"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// Subject percentages at or above strengthMin are strengths; at or below
// challengeMax they are challenges.
const (
	strengthMin  = 80
	challengeMax = 65
)

var recommendations = []string{
	"1. Continue to maintain excellent study habits and classroom participation",
	"2. Consider participating in additional academic enrichment activities",
	"3. Focus on developing critical thinking and analytical skills",
	"4. Engage in peer study groups to enhance collaborative learning",
	"5. Regular review of challenging topics with teachers",
	"6. Maintain a balanced approach to academic and extra-curricular activities",
}

// Template builds deterministic feedback from the results alone.
func Template(req Request) *Feedback {
	avg := gradebook.AverageScore(req.Results)

	var academic string
	switch {
	case avg >= 90:
		academic = "Demonstrates exceptional academic excellence across all subjects. " +
			"Consistently performs at the highest level with thorough understanding of complex concepts."
	case avg >= 75:
		academic = "Shows strong academic performance with good grasp of subject matter. " +
			"Demonstrates consistent effort and understanding in most areas."
	case avg >= 60:
		academic = "Maintains satisfactory academic progress. " +
			"Shows basic understanding of core concepts but has room for improvement."
	default:
		academic = "Currently facing academic challenges. " +
			"Requires additional support and focused attention to improve understanding of fundamental concepts."
	}

	var strong, weak []string
	for _, r := range req.Results {
		switch pct := r.Percentage(); {
		case pct >= strengthMin:
			strong = append(strong, r.ExamName)
		case pct <= challengeMax:
			weak = append(weak, r.ExamName)
		}
	}

	strengths := "Has potential for improvement across all subjects with focused effort and dedication."
	if len(strong) > 0 {
		strengths = "Exhibits particular strength in " + strings.Join(strong, ", ") +
			". Shows exceptional aptitude and engagement in these subjects."
	}

	challenges := "Maintains consistent performance across subjects. " +
		"Demonstrates steady academic progress and consistent effort in all subjects."
	if len(weak) > 0 {
		challenges = "Areas requiring additional focus include " + strings.Join(weak, ", ") + ". " +
			"Has shown gradual improvement in understanding concepts, particularly in challenging subjects. " +
			"Regular participation in class activities has contributed to this progress."
	}

	recs := strings.Join(recommendations, "\n")

	v := req.Variant
	if v == "" {
		v = VariantAcademic
	}
	bodies := map[string]string{
		"academic":        academic,
		"strengths":       strengths,
		"challenges":      challenges,
		"recommendations": recs,
		"studentFeedback": academic + " " + strengths,
		"parentFeedback":  challenges,
		"teacherNotes":    recs,
	}

	fb := &Feedback{Variant: v}
	specs, structured := variantSections[v]
	if !structured {
		fb.Sections = []Section{{
			Key:   KeyNarrative,
			Title: "Teacher's Feedback",
			Body:  strings.Join([]string{academic, strengths, challenges, recs}, "\n\n"),
		}}
		return fb
	}
	for _, spec := range specs {
		fb.Sections = append(fb.Sections, Section{Key: spec.key, Title: spec.title, Body: bodies[spec.key]})
	}
	return fb
}
