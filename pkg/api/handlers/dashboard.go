package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/premiereye/salesops/pkg/analytics"
	apierrors "github.com/premiereye/salesops/pkg/api/errors"
	"github.com/premiereye/salesops/pkg/export"
	"github.com/premiereye/salesops/pkg/feeds"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/store"
	syncpkg "github.com/premiereye/salesops/pkg/sync"
	"github.com/premiereye/salesops/pkg/vocab"
)

// AppointmentWriter persists appointment data upstream
type AppointmentWriter interface {
	CreateAppointment(ctx context.Context, req feeds.AppointmentRequest) error
}

// DashboardHandler exposes the reconciled lead collection and the sync
// operations to the dashboard frontend
type DashboardHandler struct {
	coordinator  *syncpkg.Coordinator
	store        *store.LeadStore
	appointments AppointmentWriter
	exports      *export.Service
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(coordinator *syncpkg.Coordinator, leadStore *store.LeadStore, appointments AppointmentWriter, exports *export.Service) *DashboardHandler {
	return &DashboardHandler{
		coordinator:  coordinator,
		store:        leadStore,
		appointments: appointments,
		exports:      exports,
		validate:     validator.New(),
	}
}

// Refresh triggers a concurrent reload of all three feeds. The reload is
// asynchronous; poll GET /feeds/status for progress.
func (h *DashboardHandler) Refresh(c echo.Context) error {
	h.coordinator.RefreshAll(c.Request().Context())

	return c.JSON(http.StatusAccepted, models.FeedStateResponse{
		Feeds:     h.coordinator.FeedStates(),
		SyncError: h.coordinator.SyncError(),
	})
}

// ListLeads returns the current reconciled snapshot
func (h *DashboardHandler) ListLeads(c echo.Context) error {
	leads := h.store.Snapshot()

	return c.JSON(http.StatusOK, models.LeadListResponse{
		Data:  leads,
		Total: len(leads),
	})
}

// GetLead returns a single lead by id
func (h *DashboardHandler) GetLead(c echo.Context) error {
	lead, ok := h.store.Get(c.Param("id"))
	if !ok {
		return apierrors.NotFoundError(c, "lead")
	}
	return c.JSON(http.StatusOK, lead)
}

// UpdateStatus applies an optimistic status change and schedules the
// upstream pipeline write. The response reflects local state immediately;
// persistence failures surface later via the feeds/status sync error.
func (h *DashboardHandler) UpdateStatus(c echo.Context) error {
	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	status, ok := vocab.ParseStatus(req.Status)
	if !ok {
		return apierrors.ValidationError(c, echo.NewHTTPError(http.StatusBadRequest, "unknown status"))
	}

	id := c.Param("id")
	h.coordinator.UpdateStatus(c.Request().Context(), id, status)

	if lead, found := h.store.Get(id); found {
		return c.JSON(http.StatusOK, lead)
	}
	// Unknown ids are accepted and dropped; the lead may simply not have
	// arrived from any feed yet.
	return c.JSON(http.StatusAccepted, map[string]string{
		"id":     id,
		"status": string(status),
	})
}

// BookAppointment pushes a lead's appointment to the upstream CRM. The body
// carries optional edits layered over the stored lead; on success the edits
// are applied locally so the snapshot reflects what was sent.
func (h *DashboardHandler) BookAppointment(c echo.Context) error {
	var req models.BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	lead, ok := h.store.Get(c.Param("id"))
	if !ok {
		return apierrors.NotFoundError(c, "lead")
	}

	draft := models.LeadPatch{SaleAmount: req.SaleAmount}
	if req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return apierrors.ValidationError(c, err)
		}
		draft.AppointmentDate = &t
	}
	if req.Status != "" {
		status, valid := vocab.ParseStatus(req.Status)
		if !valid {
			return apierrors.ValidationError(c, echo.NewHTTPError(http.StatusBadRequest, "unknown status"))
		}
		draft.Status = &status
	}
	if req.Service != "" {
		draft.Service = &req.Service
	}
	if req.Notes != "" {
		draft.Notes = &req.Notes
	}
	if req.Location != "" {
		draft.Location = &req.Location
	}
	if req.DOB != "" {
		draft.DOB = &req.DOB
	}
	if req.Insurance != "" {
		draft.Insurance = &req.Insurance
	}

	payload, err := feeds.AppointmentFromLead(lead, draft)
	if err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := h.appointments.CreateAppointment(c.Request().Context(), payload); err != nil {
		return apierrors.UpstreamError(c, err)
	}

	h.store.Patch(lead.ID, draft)
	updated, _ := h.store.Get(lead.ID)
	return c.JSON(http.StatusCreated, updated)
}

// FeedStatus reports per-feed load state and any pending sync error
func (h *DashboardHandler) FeedStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, models.FeedStateResponse{
		Feeds:     h.coordinator.FeedStates(),
		SyncError: h.coordinator.SyncError(),
	})
}

// Metrics returns the derived dashboard metrics for the current snapshot
func (h *DashboardHandler) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.Compute(h.store.Snapshot(), time.Now()))
}

// Export generates a csv or excel report of the current snapshot
func (h *DashboardHandler) Export(c echo.Context) error {
	var req models.ExportRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := h.validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	leads := h.store.Snapshot()
	resp, err := h.exports.ExportLeads(leads, analytics.Compute(leads, time.Now()), req.Format)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Reset wipes the session state. Called on logout.
func (h *DashboardHandler) Reset(c echo.Context) error {
	h.coordinator.Reset()
	return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
}
