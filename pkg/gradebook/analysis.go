package gradebook

import "sort"

// Distribution buckets percentages the way the analysis dashboard does.
type Distribution struct {
	Excellent        int `json:"excellent"`        // >= 90
	Good             int `json:"good"`             // 75 to 90
	Average          int `json:"average"`          // 60 to 75
	NeedsImprovement int `json:"needsImprovement"` // < 60
}

func (d *Distribution) add(pct float64) {
	switch {
	case pct >= 90:
		d.Excellent++
	case pct >= 75:
		d.Good++
	case pct >= 60:
		d.Average++
	default:
		d.NeedsImprovement++
	}
}

// SubjectAnalysis describes one subject across every student who sat it.
type SubjectAnalysis struct {
	Subject      string       `json:"subject"`
	Count        int          `json:"count"`
	AverageScore float64      `json:"averageScore"`
	HighestScore float64      `json:"highestScore"`
	LowestScore  float64      `json:"lowestScore"`
	AboveAverage int          `json:"aboveAverage"`
	BelowAverage int          `json:"belowAverage"`
	Performance  Distribution `json:"performance"`
}

// AnalyzeSubjects groups results by exam name, in first-seen order.
func AnalyzeSubjects(results []Result) []SubjectAnalysis {
	var order []string
	scores := make(map[string][]float64)
	for _, r := range results {
		if _, ok := scores[r.ExamName]; !ok {
			order = append(order, r.ExamName)
		}
		scores[r.ExamName] = append(scores[r.ExamName], r.Percentage())
	}

	out := make([]SubjectAnalysis, 0, len(order))
	for _, subject := range order {
		out = append(out, analyzeScores(subject, scores[subject]))
	}
	return out
}

func analyzeScores(subject string, pcts []float64) SubjectAnalysis {
	a := SubjectAnalysis{Subject: subject, Count: len(pcts)}
	if len(pcts) == 0 {
		return a
	}

	var sum float64
	a.HighestScore, a.LowestScore = pcts[0], pcts[0]
	for _, p := range pcts {
		sum += p
		if p > a.HighestScore {
			a.HighestScore = p
		}
		if p < a.LowestScore {
			a.LowestScore = p
		}
		a.Performance.add(p)
	}
	mean := sum / float64(len(pcts))
	for _, p := range pcts {
		if p > mean {
			a.AboveAverage++
		} else if p < mean {
			a.BelowAverage++
		}
	}
	a.AverageScore = Round1(mean)
	a.HighestScore = Round1(a.HighestScore)
	a.LowestScore = Round1(a.LowestScore)
	return a
}

// StudentStanding is one student's place within a class.
type StudentStanding struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Average     float64 `json:"average"`
	Performance string  `json:"performance"`
}

// ClassAnalysis summarises a class.
type ClassAnalysis struct {
	Class         string            `json:"class"`
	TotalStudents int               `json:"totalStudents"`
	ClassAverage  float64           `json:"classAverage"`
	Top           *StudentStanding  `json:"top,omitempty"`
	Bottom        *StudentStanding  `json:"bottom,omitempty"`
	Standings     []StudentStanding `json:"standings"`
	Subjects      []SubjectAnalysis `json:"subjects"`
	Distribution  Distribution      `json:"distribution"`
}

// AnalyzeClass builds a ClassAnalysis from a class's grouped results.
// The class average is the mean of student averages, 0 for an empty class.
func AnalyzeClass(class string, groups []Group) ClassAnalysis {
	a := ClassAnalysis{Class: class, TotalStudents: len(groups), Standings: []StudentStanding{}}

	var all []Result
	var sum float64
	for _, g := range groups {
		avg := AverageScore(g.Results)
		sum += avg
		a.Standings = append(a.Standings, StudentStanding{
			StudentID:   g.StudentID,
			StudentName: g.StudentName,
			Average:     avg,
			Performance: PerformanceFor(avg),
		})
		all = append(all, g.Results...)
		for _, r := range g.Results {
			a.Distribution.add(r.Percentage())
		}
	}
	if len(groups) > 0 {
		a.ClassAverage = Round1(sum / float64(len(groups)))
	}

	sort.SliceStable(a.Standings, func(i, j int) bool {
		return a.Standings[i].Average > a.Standings[j].Average
	})
	if n := len(a.Standings); n > 0 {
		top, bottom := a.Standings[0], a.Standings[n-1]
		a.Top, a.Bottom = &top, &bottom
	}
	a.Subjects = AnalyzeSubjects(all)
	return a
}
