package feeds

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/phone"
	"github.com/premiereye/salesops/pkg/vocab"
)

// PipelineFeed reads the sales pipeline. It is the only feed that carries
// the raw pipeline stage, which it keeps on the patch alongside the derived
// status.
type PipelineFeed struct {
	client *Client
	region string
}

// NewPipelineFeed creates the sales-pipeline ingestor
func NewPipelineFeed(client *Client, phoneRegion string) *PipelineFeed {
	return &PipelineFeed{client: client, region: phoneRegion}
}

// Name returns the feed identifier
func (f *PipelineFeed) Name() string { return "pipeline" }

// pipelineRow is the upstream row shape of the sales pipeline
type pipelineRow struct {
	ID                 int     `json:"id"`
	LeadName           *string `json:"lead_name"`
	LeadNumber         *string `json:"lead_number"`
	Email              *string `json:"email"`
	LocationPreference *string `json:"location_preference"`
	Source             *string `json:"source"`
	PipelineStage      *string `json:"pipeline_stage"`
}

type pipelinePayload struct {
	Data json.RawMessage `json:"data"`
}

type pipelineBucket struct {
	Leads []pipelineRow `json:"leads"`
}

// Load fetches and normalizes the pipeline leads. The upstream returns
// either a flat array or a map of stage buckets, each holding a `leads`
// array; both shapes are accepted.
func (f *PipelineFeed) Load(ctx context.Context) ([]models.LeadPatch, error) {
	var payload pipelinePayload
	if err := f.client.get(ctx, "/user/sales-pipeline", nil, &payload); err != nil {
		return nil, domain.NewFetchError(f.Name(), err)
	}

	rows, err := decodePipelineRows(payload.Data)
	if err != nil {
		return nil, domain.NewFetchError(f.Name(), err)
	}

	patches := make([]models.LeadPatch, 0, len(rows))
	for _, row := range rows {
		patches = append(patches, f.normalize(row))
	}
	return patches, nil
}

func decodePipelineRows(data json.RawMessage) ([]pipelineRow, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []pipelineRow
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}

	var buckets map[string]pipelineBucket
	if err := json.Unmarshal(data, &buckets); err != nil {
		return nil, fmt.Errorf("unrecognized pipeline payload shape: %w", err)
	}

	var all []pipelineRow
	for _, bucket := range buckets {
		all = append(all, bucket.Leads...)
	}
	return all, nil
}

func (f *PipelineFeed) normalize(row pipelineRow) models.LeadPatch {
	stage := vocab.StageNewLead
	if s, ok := vocab.ParseStage(strOr(row.PipelineStage, "")); ok {
		stage = s
	}

	// Appointment, sale, and note fields are deliberately absent: this feed
	// does not know them, and an absent field never clobbers what another
	// feed merged.
	return models.LeadPatch{
		ID:            fmt.Sprintf("%d", row.ID),
		Name:          models.StrPtr(strOr(row.LeadName, "Unknown")),
		Phone:         models.StrPtr(phone.Normalize(strOr(row.LeadNumber, ""), f.region)),
		Email:         models.StrPtr(strOr(row.Email, "")),
		Location:      models.StrPtr(strOr(row.LocationPreference, "")),
		Source:        models.StrPtr(strOr(row.Source, "Unknown")),
		Status:        models.StatusPtr(vocab.StageToStatus(stage)),
		PipelineStage: models.StagePtr(stage),
	}
}
