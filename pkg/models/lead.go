package models

import (
	"time"

	"github.com/premiereye/salesops/pkg/vocab"
)

// CallAttempt is one AI or manual call against a lead.
type CallAttempt struct {
	ID           string    `json:"id"`
	TS           time.Time `json:"ts"`
	DurationSec  int       `json:"duration_sec,omitempty"`
	Outcome      string    `json:"outcome"`
	Summary      string    `json:"summary,omitempty"`
	RecordingURL string    `json:"recording_url,omitempty"`
}

// Call outcomes
const (
	OutcomeAnswered   = "answered"
	OutcomeVoicemail  = "voicemail"
	OutcomeNoResponse = "no_response"
	OutcomeBooked     = "booked"
)

// Message is one entry of the two-party chat thread with a lead.
type Message struct {
	ID   string    `json:"id"`
	From string    `json:"from"` // "bot" or "lead"
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Message senders
const (
	FromBot  = "bot"
	FromLead = "lead"
)

// Lead is the canonical reconciled record. One Lead exists per id no matter
// how many feeds mention it.
type Lead struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email,omitempty"`
	Location        string              `json:"location,omitempty"`
	Source          string              `json:"source,omitempty"`
	DOB             string              `json:"dob,omitempty"`
	Insurance       string              `json:"insurance,omitempty"`
	Status          vocab.LeadStatus    `json:"status"`
	PipelineStage   vocab.PipelineStage `json:"pipeline_stage,omitempty"`
	AppointmentDate *time.Time          `json:"appointment_date,omitempty"`
	Service         string              `json:"service,omitempty"`
	SaleAmount      *float64            `json:"sale_amount,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	DateCaptured    time.Time           `json:"date_captured"`
	CallAttempts    []CallAttempt       `json:"call_attempts"`
	Messages        []Message           `json:"messages"`
}

// LeadPatch is a partial Lead. Nil fields are untouched on merge; the two
// slice fields are feed-authoritative and replace the stored value wholesale
// when non-nil.
type LeadPatch struct {
	ID              string               `json:"id"`
	Name            *string              `json:"name,omitempty"`
	Phone           *string              `json:"phone,omitempty"`
	Email           *string              `json:"email,omitempty"`
	Location        *string              `json:"location,omitempty"`
	Source          *string              `json:"source,omitempty"`
	DOB             *string              `json:"dob,omitempty"`
	Insurance       *string              `json:"insurance,omitempty"`
	Status          *vocab.LeadStatus    `json:"status,omitempty"`
	PipelineStage   *vocab.PipelineStage `json:"pipeline_stage,omitempty"`
	AppointmentDate *time.Time           `json:"appointment_date,omitempty"`
	Service         *string              `json:"service,omitempty"`
	SaleAmount      *float64             `json:"sale_amount,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	DateCaptured    *time.Time           `json:"date_captured,omitempty"`
	CallAttempts    *[]CallAttempt       `json:"call_attempts,omitempty"`
	Messages        *[]Message           `json:"messages,omitempty"`
}

// StrPtr returns a pointer to s. Convenience for building patches.
func StrPtr(s string) *string { return &s }

// StatusPtr returns a pointer to the given status.
func StatusPtr(s vocab.LeadStatus) *vocab.LeadStatus { return &s }

// StagePtr returns a pointer to the given stage.
func StagePtr(s vocab.PipelineStage) *vocab.PipelineStage { return &s }
