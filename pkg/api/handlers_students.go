package api

import (
	"net/http"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// StudentsHandler serves roster and analysis lookups.
type StudentsHandler struct {
	book     *gradebook.Book
	passMark float64
}

// NewStudentsHandler creates a StudentsHandler over book.
func NewStudentsHandler(book *gradebook.Book, passMark float64) *StudentsHandler {
	return &StudentsHandler{book: book, passMark: passMark}
}

// RegisterRoutes mounts the lookup routes.
func (h *StudentsHandler) RegisterRoutes(router *Router) {
	router.GET("/api/students", h.ListStudents)
	router.GET("/api/students/:id/results", h.StudentResults)
	router.GET("/api/classes", h.ListClasses)
	router.GET("/api/classes/:class/analysis", h.ClassAnalysis)
}

// StudentResultsResponse is the body of GET /api/students/:id/results.
type StudentResultsResponse struct {
	StudentID   string             `json:"studentId"`
	StudentName string             `json:"studentName"`
	Class       string             `json:"class"`
	Profile     *gradebook.Student `json:"profile,omitempty"`
	Grade       gradebook.Grade    `json:"grade"`
	Summary     gradebook.Summary  `json:"summary"`
	Results     []gradebook.Result `json:"results"`
}

// ListStudents handles GET /api/students.
func (h *StudentsHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	roster := h.book.Roster()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"students": roster,
		"count":    len(roster),
	})
}

// StudentResults handles GET /api/students/:id/results.
func (h *StudentsHandler) StudentResults(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "id")
	q, err := gradebook.ParseQuery(id)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	if q.Kind != gradebook.QueryStudent {
		WriteReportError(w, rerrors.Validationf(rerrors.ErrValidationInvalid, "%q is not a student ID", id).
			WithSuggestion("Student IDs look like STU001"))
		return
	}
	sel, err := h.book.Lookup(q)
	if err != nil {
		WriteReportError(w, err)
		return
	}

	g := sel.Groups[0]
	sum := gradebook.Summarize(g.Results, h.passMark)
	resp := StudentResultsResponse{
		StudentID:   g.StudentID,
		StudentName: g.StudentName,
		Class:       g.Class,
		Grade:       gradebook.GradeFor(sum.Average),
		Summary:     sum,
		Results:     g.Results,
	}
	if p, ok := h.book.Profile(g.StudentID); ok {
		resp.Profile = &p
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ListClasses handles GET /api/classes.
func (h *StudentsHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes := h.book.Classes()
	if classes == nil {
		classes = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"classes": classes})
}

// ClassAnalysis handles GET /api/classes/:class/analysis.
func (h *StudentsHandler) ClassAnalysis(w http.ResponseWriter, r *http.Request) {
	class := PathParam(r, "class")
	sel, err := h.book.Lookup(gradebook.Query{Kind: gradebook.QueryClass, Value: class})
	if err != nil {
		WriteReportError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, gradebook.AnalyzeClass(class, sel.Groups))
}
