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

// AlertsFeed reads the action-required list. By definition every row in it
// needs human attention, so the feed carries no status of its own and every
// normalized patch is labeled "Needs VA Follow-Up".
type AlertsFeed struct {
	client *Client
	region string
}

// NewAlertsFeed creates the action-required ingestor
func NewAlertsFeed(client *Client, phoneRegion string) *AlertsFeed {
	return &AlertsFeed{client: client, region: phoneRegion}
}

// Name returns the feed identifier
func (f *AlertsFeed) Name() string { return "alerts" }

// actionRequiredRow is the upstream row shape of the action-required list
type actionRequiredRow struct {
	ID                 int     `json:"id"`
	LeadName           *string `json:"lead_name"`
	LeadNumber         *string `json:"lead_number"`
	LocationPreference *string `json:"location_preference"`
	Source             *string `json:"source"`
	DOB                *string `json:"dob"`
	Insurance          *string `json:"insurance"`
	CallSummary        *string `json:"call_summary"`
	LatestReply        *string `json:"latest_reply"`
	CreatedAt          *string `json:"created_at"`
}

type actionRequiredPayload struct {
	Data struct {
		Items []actionRequiredRow `json:"items"`
	} `json:"data"`
}

// Load fetches and normalizes the action-required leads
func (f *AlertsFeed) Load(ctx context.Context) ([]models.LeadPatch, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("limit", "500")

	var payload actionRequiredPayload
	if err := f.client.get(ctx, "/user/dashboard/overview/action-required/get-list", query, &payload); err != nil {
		return nil, domain.NewFetchError(f.Name(), err)
	}

	patches := make([]models.LeadPatch, 0, len(payload.Data.Items))
	for _, row := range payload.Data.Items {
		patches = append(patches, f.normalize(row))
	}
	return patches, nil
}

func (f *AlertsFeed) normalize(row actionRequiredRow) models.LeadPatch {
	id := fmt.Sprintf("%d", row.ID)

	captured := time.Now().UTC()
	if t, ok := parseISOTime(strOr(row.CreatedAt, "")); ok {
		captured = t
	}

	// The list view only needs the latest call's timestamp and summary, so
	// the feed synthesizes a single-attempt history.
	attempts := []models.CallAttempt{{
		ID:      id + "-call-1",
		TS:      captured,
		Summary: strOr(row.CallSummary, ""),
	}}

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
		Location:     models.StrPtr(strOr(row.LocationPreference, "")),
		Source:       models.StrPtr(strOr(row.Source, "")),
		Status:       models.StatusPtr(vocab.StatusNeedsFollowUp),
		DateCaptured: &captured,
		CallAttempts: &attempts,
		Messages:     &messages,
	}
	if row.DOB != nil && *row.DOB != "" {
		patch.DOB = row.DOB
	}
	if row.Insurance != nil && *row.Insurance != "" {
		patch.Insurance = row.Insurance
	}
	return patch
}
