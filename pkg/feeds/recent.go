package feeds

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/phone"
	"github.com/premiereye/salesops/pkg/vocab"
)

// RecentActivityFeed reads the recent-activity list, the richest of the
// three feeds: it joins in appointment, sale, and AI-call data.
type RecentActivityFeed struct {
	client *Client
	region string
}

// NewRecentActivityFeed creates the recent-activity ingestor
func NewRecentActivityFeed(client *Client, phoneRegion string) *RecentActivityFeed {
	return &RecentActivityFeed{client: client, region: phoneRegion}
}

// Name returns the feed identifier
func (f *RecentActivityFeed) Name() string { return "recent-activity" }

// recentActivityRow is the upstream row shape of the recent-activity list
type recentActivityRow struct {
	ID                 int      `json:"id"`
	LeadName           *string  `json:"lead_name"`
	LeadNumber         *string  `json:"lead_number"`
	Email              *string  `json:"email"`
	LocationPreference *string  `json:"location_preference"`
	Source             *string  `json:"source"`
	PipelineStage      *string  `json:"pipeline_stage"`
	AISummary          *string  `json:"ai_summary"`
	DOB                *string  `json:"dob"`
	Insurance          *string  `json:"insurance"`
	LatestReply        *string  `json:"latest_reply"`
	CreatedAt          *string  `json:"created_at"`
	Timestamp          *string  `json:"timestamp"` // epoch millis
	ScheduledAt        *string  `json:"scheduled_at"`
	AppointmentDate    *string  `json:"appointmentDate"`
	SaleAmount         *float64 `json:"saleAmount"`
	Notes              *string  `json:"notes"`
}

type recentActivityPayload struct {
	Data struct {
		Items []recentActivityRow `json:"items"`
	} `json:"data"`
}

// Load fetches and normalizes the recent-activity leads
func (f *RecentActivityFeed) Load(ctx context.Context) ([]models.LeadPatch, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("limit", "1000")

	var payload recentActivityPayload
	if err := f.client.get(ctx, "/user/dashboard/recent-activity/list", query, &payload); err != nil {
		return nil, domain.NewFetchError(f.Name(), err)
	}

	patches := make([]models.LeadPatch, 0, len(payload.Data.Items))
	for _, row := range payload.Data.Items {
		patches = append(patches, f.normalize(row))
	}
	return patches, nil
}

func (f *RecentActivityFeed) normalize(row recentActivityRow) models.LeadPatch {
	id := fmt.Sprintf("%d", row.ID)

	// The feed sends epoch millis in `timestamp`; older rows only carry
	// created_at.
	captured := time.Now().UTC()
	if t, ok := parseEpochMillis(strOr(row.Timestamp, "")); ok {
		captured = t
	} else if t, ok := parseISOTime(strOr(row.CreatedAt, "")); ok {
		captured = t
	}

	status := vocab.StatusNew
	if stage, ok := vocab.ParseStage(strOr(row.PipelineStage, "")); ok {
		status = vocab.StageToStatus(stage)
	}

	attempts := []models.CallAttempt{}
	if summary := strOr(row.AISummary, ""); summary != "" {
		attempts = append(attempts, models.CallAttempt{
			ID:      id + "-ai-1",
			TS:      captured,
			Outcome: models.OutcomeAnswered,
			Summary: summary,
		})
	}

	messages := []models.Message{}
	if reply := strOr(row.LatestReply, ""); reply != "" {
		messages = append(messages, models.Message{
			ID:   id + "-msg-1",
			From: models.FromLead,
			Text: reply,
			TS:   captured,
		})
	}

	patch := models.LeadPatch{
		ID:           id,
		Name:         models.StrPtr(strOr(row.LeadName, "Unknown")),
		Phone:        models.StrPtr(phone.Normalize(strOr(row.LeadNumber, ""), f.region)),
		Email:        models.StrPtr(strOr(row.Email, "")),
		Location:     models.StrPtr(strOr(row.LocationPreference, "")),
		Source:       models.StrPtr(strOr(row.Source, "Unknown")),
		Status:       models.StatusPtr(status),
		Notes:        models.StrPtr(strOr(row.Notes, strOr(row.AISummary, ""))),
		DateCaptured: &captured,
		CallAttempts: &attempts,
		Messages:     &messages,
	}

	// Appointment date comes under either name depending on upstream version
	if t, ok := parseISOTime(strOr(row.AppointmentDate, strOr(row.ScheduledAt, ""))); ok {
		patch.AppointmentDate = &t
	}
	if row.SaleAmount != nil {
		patch.SaleAmount = row.SaleAmount
	}
	if row.DOB != nil && *row.DOB != "" {
		patch.DOB = row.DOB
	}
	if row.Insurance != nil && *row.Insurance != "" {
		patch.Insurance = row.Insurance
	}
	return patch
}
