package gradebook

import "math"

// Summary aggregates a student's (or a class's) exam records.
type Summary struct {
	Exams    int     `json:"exams"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Obtained float64 `json:"obtained"`
	Possible float64 `json:"possible"`
	// Overall is sum(marks)/sum(totalMarks)*100 rounded to one decimal.
	Overall float64 `json:"overall"`
	// Average is the mean of per-exam percentages rounded to an integer.
	Average float64 `json:"average"`
	Best    string  `json:"best,omitempty"`
	Weakest string  `json:"weakest,omitempty"`
}

// Summarize aggregates results. An empty slice yields a zero Summary.
func Summarize(results []Result, passMark float64) Summary {
	var s Summary
	s.Exams = len(results)

	bestPct, weakPct := -1.0, math.MaxFloat64
	for _, r := range results {
		if r.Passed(passMark) {
			s.Passed++
		} else {
			s.Failed++
		}
		s.Obtained += r.Marks
		s.Possible += r.TotalMarks

		pct := r.Percentage()
		if pct > bestPct {
			bestPct, s.Best = pct, r.ExamName
		}
		if pct < weakPct {
			weakPct, s.Weakest = pct, r.ExamName
		}
	}

	if s.Possible > 0 {
		s.Overall = Round1(s.Obtained / s.Possible * 100)
	}
	s.Average = AverageScore(results)
	return s
}

// AverageScore is the rounded mean of per-exam percentages, 0 when empty.
func AverageScore(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var total float64
	for _, r := range results {
		total += r.Percentage()
	}
	return math.Round(total / float64(len(results)))
}

// MarksText renders "obtained/possible".
func (s Summary) MarksText() string {
	return FormatMarks(s.Obtained) + "/" + FormatMarks(s.Possible)
}

// OverallText renders the overall percentage, e.g. "57.5%".
func (s Summary) OverallText() string {
	return FormatPercent(s.Overall)
}
