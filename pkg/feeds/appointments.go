package feeds

import (
	"fmt"
	"strconv"
	"time"

	"github.com/premiereye/salesops/pkg/domain"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/vocab"
)

// AppointmentRequest is the upstream appointment write payload. Optional
// fields are omitted entirely rather than sent as null.
type AppointmentRequest struct {
	LeadID        int                     `json:"lead_id"`
	ScheduledAt   string                  `json:"scheduled_at"`
	LeadName      string                  `json:"lead_name,omitempty"`
	Status        vocab.AppointmentStatus `json:"status,omitempty"`
	ServiceType   string                  `json:"service_type,omitempty"`
	ExpectedValue *float64                `json:"expected_value,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
	Location      string                  `json:"location,omitempty"`
	DOB           string                  `json:"dob,omitempty"`
	Insurance     string                  `json:"insurance,omitempty"`
}

// AppointmentFromLead builds the appointment payload for a lead plus a draft
// of edits. Draft values win over stored ones; fields the upstream would
// reject (unknown service, unknown location) are dropped, and unknown
// insurance collapses to "Other". A missing date defaults to now so the
// upstream's ISO-date validation passes.
func AppointmentFromLead(lead models.Lead, draft models.LeadPatch) (AppointmentRequest, error) {
	numericID, err := strconv.Atoi(lead.ID)
	if err != nil {
		return AppointmentRequest{}, domain.NewValidationError(fmt.Sprintf("lead id %q is not numeric", lead.ID))
	}

	scheduledAt := time.Now().UTC()
	if draft.AppointmentDate != nil {
		scheduledAt = *draft.AppointmentDate
	} else if lead.AppointmentDate != nil {
		scheduledAt = *lead.AppointmentDate
	}

	req := AppointmentRequest{
		LeadID:      numericID,
		ScheduledAt: scheduledAt.Format(time.RFC3339),
	}

	if name := patchOr(draft.Name, lead.Name); name != "" {
		req.LeadName = name
	}

	status := lead.Status
	if draft.Status != nil {
		status = *draft.Status
	}
	if backendStatus, ok := vocab.StatusToAppointment(status); ok {
		req.Status = backendStatus
	}

	if serviceType, ok := vocab.ServiceToBackend(patchOr(draft.Service, lead.Service)); ok {
		req.ServiceType = serviceType
	}

	if draft.SaleAmount != nil {
		req.ExpectedValue = draft.SaleAmount
	} else if lead.SaleAmount != nil {
		req.ExpectedValue = lead.SaleAmount
	}

	if notes := patchOr(draft.Notes, lead.Notes); notes != "" {
		req.Notes = notes
	}
	if loc, ok := vocab.NormalizeLocation(patchOr(draft.Location, lead.Location)); ok {
		req.Location = loc
	}
	if dob := patchOr(draft.DOB, lead.DOB); dob != "" {
		req.DOB = dob
	}
	if ins, ok := vocab.NormalizeInsurance(patchOr(draft.Insurance, lead.Insurance)); ok {
		req.Insurance = ins
	}

	return req, nil
}

func patchOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
