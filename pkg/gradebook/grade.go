package gradebook

// Grade is a letter grade with its display color.
type Grade struct {
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{90, Grade{"A+", "#22C55E"}},
	{80, Grade{"A", "#2962FF"}},
	{70, Grade{"B", "#EAB308"}},
	{60, Grade{"C", "#F97316"}},
	{50, Grade{"D", "#EF4444"}},
}

// GradeFor maps a percentage onto A+/A/B/C/D/F.
func GradeFor(pct float64) Grade {
	for _, b := range gradeBands {
		if pct >= b.min {
			return b.grade
		}
	}
	return Grade{"F", "#EF4444"}
}

// Performance labels used on the roster.
const (
	PerformanceExcellent = "Excellent"
	PerformanceGood      = "Good"
	PerformanceAverage   = "Average"
	PerformanceNeedsWork = "Needs Improvement"
)

// PerformanceFor maps an average score onto a roster label.
func PerformanceFor(avg float64) string {
	switch {
	case avg >= 85:
		return PerformanceExcellent
	case avg >= 70:
		return PerformanceGood
	case avg >= 50:
		return PerformanceAverage
	}
	return PerformanceNeedsWork
}

var (
	remarksEnglish = [...]string{"Excellent", "Very Good", "Good", "Average", "Fair", "Poor"}
	remarksSwahili = [...]string{"Bora", "Safi", "Nzuri", "Wastani", "Inafaa", "Hafifu"}
)

// ScoreComment returns the one-word remark for pct. Swahili exams are
// remarked in Swahili.
func ScoreComment(pct float64, subject string) string {
	words := remarksEnglish
	if subject == "Swahili" {
		words = remarksSwahili
	}
	switch {
	case pct >= 90:
		return words[0]
	case pct >= 80:
		return words[1]
	case pct >= 70:
		return words[2]
	case pct >= 60:
		return words[3]
	case pct >= 50:
		return words[4]
	}
	return words[5]
}
