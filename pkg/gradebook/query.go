package gradebook

import (
	"strings"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/validate"
)

// QueryKind distinguishes student lookups from class lookups.
type QueryKind string

const (
	QueryStudent QueryKind = "student"
	QueryClass   QueryKind = "class"
)

// Query is a parsed report request.
type Query struct {
	Kind  QueryKind
	Value string
}

// ParseQuery routes STU<digits> (any case) to a student lookup and
// anything else to a class lookup. Student IDs are upper-cased.
func ParseQuery(q string) (Query, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return Query{}, rerrors.EmptyQuery()
	}
	if validate.IsStudentID(q) {
		return Query{Kind: QueryStudent, Value: strings.ToUpper(q)}, nil
	}
	return Query{Kind: QueryClass, Value: q}, nil
}

func (q Query) String() string {
	return string(q.Kind) + ":" + q.Value
}
