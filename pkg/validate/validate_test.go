package validate

import (
	"strings"
	"testing"
)

type sample struct {
	ID    string  `yaml:"student_id" validate:"required,studentid"`
	Marks float64 `json:"marks" validate:"gte=0,ltefield=Total"`
	Total float64 `json:"total_marks" validate:"gt=0"`
	Color string  `yaml:"color" validate:"omitempty,hexcolor6"`
}

func TestStruct_Valid(t *testing.T) {
	if msgs := Struct(sample{ID: "STU001", Marks: 40, Total: 50, Color: "#6366F1"}); msgs != nil {
		t.Errorf("expected no messages, got %v", msgs)
	}
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{"bad id", sample{ID: "X1", Marks: 1, Total: 2}, "student_id must look like STU001"},
		{"missing id", sample{Marks: 1, Total: 2}, "student_id is a required field"},
		{"negative marks", sample{ID: "STU1", Marks: -1, Total: 2}, "marks must be 0 or greater"},
		{"marks above total", sample{ID: "STU1", Marks: 3, Total: 2}, "marks must be less than or equal to"},
		{"zero total", sample{ID: "STU1", Marks: 0, Total: 0}, "total_marks must be greater than 0"},
		{"bad color", sample{ID: "STU1", Marks: 1, Total: 2, Color: "blue"}, "color must be a #RRGGBB color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := Struct(tt.in)
			joined := strings.Join(msgs, "; ")
			if !strings.Contains(joined, tt.want) {
				t.Errorf("expected %q in %q", tt.want, joined)
			}
		})
	}
}

func TestIsStudentID(t *testing.T) {
	tests := map[string]bool{
		"STU001":  true,
		"stu42":   true,
		" STU7 ":  true,
		"STU":     false,
		"10th":    false,
		"STU01A":  false,
		"XSTU001": false,
	}
	for in, want := range tests {
		if got := IsStudentID(in); got != want {
			t.Errorf("IsStudentID(%q) = %v, want %v", in, got, want)
		}
	}
}
