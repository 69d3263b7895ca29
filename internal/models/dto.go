package models

import "time"

// ===== LIST DTOs =====

// ListResponse is returned by every collection endpoint; Total is the size of the
// fetched collection before filtering.
type ListResponse[T any] struct {
	Items    []T    `json:"items"`
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
	Notice   *Flash `json:"notice,omitempty"`
}

// Flash is the single transient message a page shows after an operation.
type Flash struct {
	Message  string    `json:"message"`
	Severity string    `json:"severity"` // success, error
	At       time.Time `json:"at"`
}

// ===== STATISTICS DTOs =====

type RemarkStats struct {
	Positive    int `json:"positive"`
	Negative    int `json:"negative"`
	Total       int `json:"total"`
	PositivePct int `json:"positive_pct"`
	NegativePct int `json:"negative_pct"`
}

// TraineeRecord is the drill-down view of one trainee.
type TraineeRecord struct {
	Stagiaire   Stagiaire       `json:"stagiaire"`
	Remarks     []Remark        `json:"remarks"`
	Penitions   []Penition      `json:"penitions"`
	Permissions []Permission    `json:"permissions"`
	Stats       RemarkStats     `json:"stats"`
	Calendar    []CalendarEntry `json:"calendar"`
}

// CalendarEntry is one all-day range of the trainee calendar. End is the day after
// the last included day.
type CalendarEntry struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TraineeStats is one row of the pedagogical overview.
type TraineeStats struct {
	DocumentID  string      `json:"documentId"`
	MLE         string      `json:"mle"`
	FullName    string      `json:"full_name"`
	Penitions   int         `json:"penitions"`
	Permissions int         `json:"permissions"`
	Stats       RemarkStats `json:"stats"`
}

// ===== FORM REFERENCES =====

// Option is one selectable value of a relation field.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error            string            `json:"error,omitempty"`
	Message          string            `json:"message"`
	Details          interface{}       `json:"details,omitempty"`
	Redirect         string            `json:"redirect,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	Path             string            `json:"path,omitempty"`
	ValidationErrors []ValidationIssue `json:"validation_errors,omitempty"`
}

type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
