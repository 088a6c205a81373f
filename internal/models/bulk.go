package models

// BulkRow is the transient, classified form of one parsed spreadsheet row.
// It lives only for the duration of a single bulk-upload request.
type BulkRow struct {
	// Fields is the raw column-name -> cell-value map of the source row.
	Fields map[string]any `json:"fields"`
	// QuestionText is the trimmed value of the "Question" column.
	QuestionText string `json:"question,omitempty"`
	// CategoryNames are the usable category tokens, in column order.
	CategoryNames []string `json:"categories,omitempty"`
	// Uploadable reports whether the row carries a usable question.
	Uploadable bool `json:"uploadable"`
}

// BulkRowResult is the per-row outcome of the bulk ingestion pipeline.
// Exactly one of Question / Existing is set on the happy paths; Error is
// populated whenever any step of the row degraded or failed.
type BulkRowResult struct {
	// Question is the record created for this row.
	Question *Question `json:"question,omitempty"`
	// Existing is the pre-existing record when the row's name collided.
	Existing *Question `json:"existing,omitempty"`
	// CategoryIDs are the resolved category ids linked (or attempted) for
	// the row, in the order the names appeared.
	CategoryIDs []string `json:"category_ids"`
	// Error is a human-readable description of whatever went wrong for this
	// row; the batch itself never fails because of it.
	Error string `json:"error,omitempty"`
}

// RequestInfo captures HTTP request context for structured logs.
type RequestInfo struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	RemoteAddr string `json:"remote_addr"`
	UserAgent  string `json:"user_agent"`
}

// ErrorInfo captures structured error details for logs.
type ErrorInfo struct {
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}
