package gradebook

import (
	"sort"
	"strings"
	"sync"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// Group is one student's results in recorded order.
type Group struct {
	StudentID   string   `json:"studentId"`
	StudentName string   `json:"studentName"`
	Class       string   `json:"class"`
	Results     []Result `json:"results"`
}

// Selection is the answer to a Query.
type Selection struct {
	Query  Query
	Groups []Group
}

// Results flattens the selection in group order.
func (s Selection) Results() []Result {
	var out []Result
	for _, g := range s.Groups {
		out = append(out, g.Results...)
	}
	return out
}

// Book is an in-memory index of results and student profiles.
// It is safe for concurrent use.
type Book struct {
	mu       sync.RWMutex
	results  []Result
	profiles map[string]Student
}

// NewBook creates a Book holding results and profiles.
func NewBook(results []Result, profiles []Student) *Book {
	b := &Book{profiles: make(map[string]Student)}
	b.Add(results...)
	for _, p := range profiles {
		b.profiles[strings.ToUpper(p.ID)] = p
	}
	return b
}

// Add appends results.
func (b *Book) Add(results ...Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, results...)
}

// Len returns the number of stored results.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.results)
}

// Profile returns the roster entry for id, if any.
func (b *Book) Profile(id string) (Student, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.profiles[strings.ToUpper(id)]
	return p, ok
}

// ForStudent returns the student's results in recorded order.
func (b *Book) ForStudent(id string) []Result {
	return b.filter(func(r Result) bool { return strings.EqualFold(r.StudentID, id) })
}

// ForClass returns the class's results in recorded order.
func (b *Book) ForClass(class string) []Result {
	return b.filter(func(r Result) bool { return strings.EqualFold(r.Class, class) })
}

func (b *Book) filter(keep func(Result) bool) []Result {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Result
	for _, r := range b.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Lookup resolves a query into groups of results. A query with no
// matching records returns a DATA_NOT_FOUND error.
func (b *Book) Lookup(q Query) (Selection, error) {
	var results []Result
	switch q.Kind {
	case QueryStudent:
		results = b.ForStudent(q.Value)
		if len(results) == 0 {
			return Selection{}, rerrors.NoStudentResults(q.Value)
		}
	case QueryClass:
		results = b.ForClass(q.Value)
		if len(results) == 0 {
			return Selection{}, rerrors.NoClassResults(q.Value)
		}
	default:
		return Selection{}, rerrors.EmptyQuery()
	}
	return Selection{Query: q, Groups: GroupByStudent(results)}, nil
}

// GroupByStudent groups results by student ID in first-seen order.
func GroupByStudent(results []Result) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range results {
		key := strings.ToUpper(r.StudentID)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				StudentID:   r.StudentID,
				StudentName: r.StudentName,
				Class:       r.Class,
			})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}

// RosterEntry is a row of the student listing.
type RosterEntry struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Class       string  `json:"class"`
	Exams       int     `json:"exams"`
	Average     float64 `json:"average"`
	Performance string  `json:"performance"`
}

// Roster lists every student with results, in first-seen order.
func (b *Book) Roster() []RosterEntry {
	b.mu.RLock()
	groups := GroupByStudent(b.results)
	b.mu.RUnlock()

	out := make([]RosterEntry, 0, len(groups))
	for _, g := range groups {
		avg := AverageScore(g.Results)
		out = append(out, RosterEntry{
			StudentID:   g.StudentID,
			StudentName: g.StudentName,
			Class:       g.Class,
			Exams:       len(g.Results),
			Average:     avg,
			Performance: PerformanceFor(avg),
		})
	}
	return out
}

// StudentIDs returns the distinct student IDs, sorted.
func (b *Book) StudentIDs() []string {
	return b.distinct(func(r Result) string { return r.StudentID })
}

// Classes returns the distinct class names, sorted.
func (b *Book) Classes() []string {
	return b.distinct(func(r Result) string { return r.Class })
}

func (b *Book) distinct(key func(Result) string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, r := range b.results {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
