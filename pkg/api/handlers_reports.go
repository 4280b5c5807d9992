package api

import (
	"net/http"
	"strconv"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/report"
)

// ReportsHandler serves PDF report downloads.
type ReportsHandler struct {
	generator *report.Generator
	events    EventBroadcaster
}

// NewReportsHandler creates a ReportsHandler. A nil events drops events.
func NewReportsHandler(gen *report.Generator, events EventBroadcaster) *ReportsHandler {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &ReportsHandler{generator: gen, events: events}
}

// RegisterRoutes mounts the report route.
func (h *ReportsHandler) RegisterRoutes(router *Router) {
	router.POST("/api/reports", h.CreateReport)
}

// ReportRequest is the body of POST /api/reports.
type ReportRequest struct {
	// Query is a student ID (STU001) or a class name.
	Query   string `json:"query"`
	Variant string `json:"variant,omitempty"`
	Chart   string `json:"chart,omitempty"`
	// Feedback set to false skips feedback sections.
	Feedback *bool `json:"feedback,omitempty"`
}

// CreateReport handles POST /api/reports. The response is the PDF as an
// attachment; a query without records answers 404 DATA_NOT_FOUND.
func (h *ReportsHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteReportError(w, err)
		return
	}

	q, err := gradebook.ParseQuery(req.Query)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	variant := feedback.Variant("")
	if req.Variant != "" {
		if variant, err = feedback.ParseVariant(req.Variant); err != nil {
			WriteReportError(w, rerrors.Validation(rerrors.ErrValidationInvalid, err.Error()))
			return
		}
	}

	rid := RequestID(r)
	h.events.ReportStarted(&ReportEvent{RequestID: rid, Query: req.Query, Kind: string(q.Kind)})

	out, err := h.generator.GenerateWith(r.Context(), report.Request{
		Query:        q,
		Variant:      variant,
		Chart:        report.ChartKind(req.Chart),
		SkipFeedback: req.Feedback != nil && !*req.Feedback,
		Progress: func(done, total int) {
			h.events.ReportProgress(&ProgressEvent{RequestID: rid, Query: req.Query, Done: done, Total: total})
		},
		OnFallback: func(studentID, reason string) {
			h.events.FeedbackFallback(&FeedbackFallbackEvent{RequestID: rid, StudentID: studentID, Reason: reason})
		},
	})
	if err != nil {
		h.events.ReportFailed(&ReportEvent{
			RequestID: rid,
			Query:     req.Query,
			Kind:      string(q.Kind),
			Code:      rerrors.CodeOf(err),
			Error:     err.Error(),
		})
		WriteReportError(w, err)
		return
	}

	h.events.ReportCompleted(&ReportEvent{
		RequestID: rid,
		ReportID:  out.ID,
		Query:     req.Query,
		Kind:      string(out.Kind),
		Filename:  out.Filename,
		Pages:     out.Pages,
		Students:  out.Students,
		Fallback:  out.Fallback,
	})

	hdr := w.Header()
	hdr.Set("Content-Type", "application/pdf")
	hdr.Set("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	hdr.Set("Content-Length", strconv.Itoa(len(out.Data)))
	hdr.Set("X-Report-ID", out.ID)
	hdr.Set("X-Report-Pages", strconv.Itoa(out.Pages))
	if out.Fallback {
		hdr.Set("X-Feedback-Fallback", out.FallbackReason)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}
