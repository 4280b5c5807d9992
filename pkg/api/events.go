package api

// ReportEvent describes a report request on the reports channel.
type ReportEvent struct {
	RequestID string `json:"requestId,omitempty"`
	ReportID  string `json:"reportId,omitempty"`
	Query     string `json:"query"`
	Kind      string `json:"kind,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Pages     int    `json:"pages,omitempty"`
	Students  int    `json:"students,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ProgressEvent counts students composed so far in a class report.
type ProgressEvent struct {
	RequestID string `json:"requestId,omitempty"`
	Query     string `json:"query"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
}

// FeedbackFallbackEvent reports a student whose feedback came from
// templates.
type FeedbackFallbackEvent struct {
	RequestID string `json:"requestId,omitempty"`
	StudentID string `json:"studentId"`
	Reason    string `json:"reason"`
}

// EventBroadcaster publishes report lifecycle events.
type EventBroadcaster interface {
	ReportStarted(e *ReportEvent) error
	ReportProgress(e *ProgressEvent) error
	ReportCompleted(e *ReportEvent) error
	ReportFailed(e *ReportEvent) error
	FeedbackFallback(e *FeedbackFallbackEvent) error
}

// HubEventBroadcaster publishes events to websocket clients.
type HubEventBroadcaster struct {
	hub *Hub
}

// NewHubEventBroadcaster creates a broadcaster over hub.
func NewHubEventBroadcaster(hub *Hub) *HubEventBroadcaster {
	return &HubEventBroadcaster{hub: hub}
}

func (b *HubEventBroadcaster) ReportStarted(e *ReportEvent) error {
	return b.hub.BroadcastToChannel(ChannelReports, newMessage(EventTypeReportStarted, e))
}

func (b *HubEventBroadcaster) ReportProgress(e *ProgressEvent) error {
	return b.hub.BroadcastToChannel(ChannelReports, newMessage(EventTypeProgress, e))
}

func (b *HubEventBroadcaster) ReportCompleted(e *ReportEvent) error {
	return b.hub.BroadcastToChannel(ChannelReports, newMessage(EventTypeReportCompleted, e))
}

func (b *HubEventBroadcaster) ReportFailed(e *ReportEvent) error {
	return b.hub.BroadcastToChannel(ChannelReports, newMessage(EventTypeReportFailed, e))
}

func (b *HubEventBroadcaster) FeedbackFallback(e *FeedbackFallbackEvent) error {
	return b.hub.BroadcastToChannel(ChannelFeedback, newMessage(EventTypeFeedbackFallback, e))
}

// nopBroadcaster drops every event.
type nopBroadcaster struct{}

func (nopBroadcaster) ReportStarted(*ReportEvent) error             { return nil }
func (nopBroadcaster) ReportProgress(*ProgressEvent) error          { return nil }
func (nopBroadcaster) ReportCompleted(*ReportEvent) error           { return nil }
func (nopBroadcaster) ReportFailed(*ReportEvent) error              { return nil }
func (nopBroadcaster) FeedbackFallback(*FeedbackFallbackEvent) error { return nil }
