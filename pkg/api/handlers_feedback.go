package api

import (
	"net/http"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// FeedbackHandler generates feedback without composing a report.
type FeedbackHandler struct {
	book     *gradebook.Book
	service  *feedback.Service
	passMark float64
	events   EventBroadcaster
}

// NewFeedbackHandler creates a FeedbackHandler. book may be nil when
// callers always send results.
func NewFeedbackHandler(book *gradebook.Book, svc *feedback.Service, passMark float64, events EventBroadcaster) *FeedbackHandler {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &FeedbackHandler{book: book, service: svc, passMark: passMark, events: events}
}

// RegisterRoutes mounts the feedback route.
func (h *FeedbackHandler) RegisterRoutes(router *Router) {
	router.POST("/api/feedback", h.CreateFeedback)
}

// FeedbackRequest is the body of POST /api/feedback. Either StudentID names
// a student in the loaded results, or StudentName and Results carry the
// records inline.
type FeedbackRequest struct {
	StudentID   string             `json:"studentId,omitempty"`
	StudentName string             `json:"studentName,omitempty"`
	Class       string             `json:"class,omitempty"`
	Results     []gradebook.Result `json:"results,omitempty"`
	Variant     string             `json:"variant,omitempty"`
}

// CreateFeedback handles POST /api/feedback. It answers 200 with template
// text and fallback set when the completion service fails.
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteReportError(w, err)
		return
	}

	variant, err := feedback.ParseVariant(req.Variant)
	if err != nil {
		WriteReportError(w, rerrors.Validation(rerrors.ErrValidationInvalid, err.Error()))
		return
	}
	if req.Variant == "" {
		variant = h.service.DefaultVariant()
	}

	fr := feedback.Request{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Class:       req.Class,
		Results:     req.Results,
		Variant:     variant,
		PassMark:    h.passMark,
	}
	if len(fr.Results) == 0 {
		if req.StudentID == "" || h.book == nil {
			WriteReportError(w, rerrors.Validation(rerrors.ErrValidationRequired, "studentId or results is required"))
			return
		}
		q, err := gradebook.ParseQuery(req.StudentID)
		if err != nil {
			WriteReportError(w, err)
			return
		}
		sel, err := h.book.Lookup(q)
		if err != nil {
			WriteReportError(w, err)
			return
		}
		g := sel.Groups[0]
		fr.StudentID, fr.StudentName, fr.Class, fr.Results = g.StudentID, g.StudentName, g.Class, g.Results
	}
	if fr.StudentName == "" {
		WriteReportError(w, rerrors.Validation(rerrors.ErrValidationRequired, "studentName is required with inline results"))
		return
	}
	fr.Grade = gradebook.GradeFor(gradebook.AverageScore(fr.Results)).Letter

	fb := h.service.Generate(r.Context(), fr)
	if fb.Fallback {
		h.events.FeedbackFallback(&FeedbackFallbackEvent{RequestID: RequestID(r), StudentID: fr.StudentID, Reason: fb.Reason})
	}
	WriteJSON(w, http.StatusOK, fb)
}
