package models

import "time"

// ErrorResponse is the standard error body returned by the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UpdateStatusRequest is the body of PATCH /leads/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeadListResponse is the reconciled snapshot returned to the dashboard
type LeadListResponse struct {
	Data  []Lead `json:"data"`
	Total int    `json:"total"`
}

// FeedStateResponse reports per-feed load state plus the pending sync error
type FeedStateResponse struct {
	Feeds     map[string]FeedState `json:"feeds"`
	SyncError string               `json:"sync_error,omitempty"`
}

// FeedState is the load state of one ingestor
type FeedState struct {
	Status    string    `json:"status"` // loading, ok, stale, error
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Leads     int       `json:"leads"`
}

// Feed states
const (
	FeedLoading = "loading"
	FeedOK      = "ok"
	FeedStale   = "stale"
	FeedError   = "error"
)

// DashboardMetrics is the read-side aggregation over the current snapshot
type DashboardMetrics struct {
	Total         int     `json:"total"`
	NewToday      int     `json:"new_today"`
	Booked        int     `json:"booked"`
	Completed     int     `json:"completed"`
	Revenue       float64 `json:"revenue"`
	CallsMade     int     `json:"calls_made"`
	CallsAnswered int     `json:"calls_answered"`
	AnswerRate    float64 `json:"answer_rate"`
	MessagesTotal int     `json:"messages_total"`
}

// BookAppointmentRequest is the body of POST /leads/:id/appointment. Every
// field is an optional edit layered over the stored lead.
type BookAppointmentRequest struct {
	ScheduledAt string   `json:"scheduled_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status      string   `json:"status,omitempty"`
	Service     string   `json:"service,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Location    string   `json:"location,omitempty"`
	DOB         string   `json:"dob,omitempty"`
	Insurance   string   `json:"insurance,omitempty"`
	SaleAmount  *float64 `json:"sale_amount,omitempty"`
}

// ExportRequest selects the report format
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv excel"`
}

// ExportResponse points at a generated report file
type ExportResponse struct {
	Format    string `json:"format"`
	LeadCount int    `json:"lead_count"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at"`
}
