package store

import (
	"sort"
	"sync"
	"time"

	"github.com/premiereye/salesops/pkg/models"
)

// LeadStore is the single source of truth for the reconciled lead
// collection. Feeds resolve in close succession on separate goroutines, so
// both write paths hold the write lock; readers only ever see deep copies.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string]models.Lead
}

// New creates an empty lead store
func New() *LeadStore {
	return &LeadStore{
		leads: make(map[string]models.Lead),
	}
}

// MergeAll upserts a batch of partial leads. A lead is created the first
// time any feed mentions its id; existing leads get a field-by-field
// overwrite of only the fields the patch carries. Applying the same batch
// twice, or batches in any relative order, converges to the same state.
func (s *LeadStore) MergeAll(patches []models.LeadPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range patches {
		if p.ID == "" {
			continue
		}
		lead, ok := s.leads[p.ID]
		if !ok {
			// Capture time defaults to first sighting; a feed that knows the
			// real value overrides it in the patch below.
			lead = models.Lead{ID: p.ID, DateCaptured: time.Now().UTC()}
		}
		applyPatch(&lead, p)
		s.leads[p.ID] = lead
	}
}

// Patch applies a partial update to a single lead. Unknown ids are a silent
// no-op: optimistic updates may race with feeds that have not delivered the
// lead yet, and dropping the patch is the chosen policy over erroring.
func (s *LeadStore) Patch(id string, p models.LeadPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return
	}
	applyPatch(&lead, p)
	s.leads[id] = lead
}

// Get returns a copy of one lead
func (s *LeadStore) Get(id string) (models.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return models.Lead{}, false
	}
	return copyLead(lead), true
}

// Snapshot returns a stable, deep-copied view of the collection ordered by
// appointment date, falling back to capture date, newest first. Mutating the
// result never touches store state.
func (s *LeadStore) Snapshot() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		out = append(out, copyLead(lead))
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := sortKey(out[i]), sortKey(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// Len returns the number of leads currently held
func (s *LeadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

// Reset wipes the collection. Used on session reset (logout).
func (s *LeadStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = make(map[string]models.Lead)
}

func sortKey(l models.Lead) time.Time {
	if l.AppointmentDate != nil {
		return *l.AppointmentDate
	}
	return l.DateCaptured
}

// applyPatch overwrites only the fields present on the patch. The two slice
// fields are feed-authoritative: a non-nil slice replaces the stored value
// wholesale, a nil slice leaves it alone.
func applyPatch(lead *models.Lead, p models.LeadPatch) {
	if p.Name != nil {
		lead.Name = *p.Name
	}
	if p.Phone != nil {
		lead.Phone = *p.Phone
	}
	if p.Email != nil {
		lead.Email = *p.Email
	}
	if p.Location != nil {
		lead.Location = *p.Location
	}
	if p.Source != nil {
		lead.Source = *p.Source
	}
	if p.DOB != nil {
		lead.DOB = *p.DOB
	}
	if p.Insurance != nil {
		lead.Insurance = *p.Insurance
	}
	if p.Status != nil {
		lead.Status = *p.Status
	}
	if p.PipelineStage != nil {
		lead.PipelineStage = *p.PipelineStage
	}
	if p.AppointmentDate != nil {
		t := *p.AppointmentDate
		lead.AppointmentDate = &t
	}
	if p.Service != nil {
		lead.Service = *p.Service
	}
	if p.SaleAmount != nil {
		v := *p.SaleAmount
		lead.SaleAmount = &v
	}
	if p.Notes != nil {
		lead.Notes = *p.Notes
	}
	if p.DateCaptured != nil {
		lead.DateCaptured = *p.DateCaptured
	}
	if p.CallAttempts != nil {
		lead.CallAttempts = append([]models.CallAttempt(nil), (*p.CallAttempts)...)
	}
	if p.Messages != nil {
		lead.Messages = append([]models.Message(nil), (*p.Messages)...)
	}
}

func copyLead(l models.Lead) models.Lead {
	out := l
	if l.AppointmentDate != nil {
		t := *l.AppointmentDate
		out.AppointmentDate = &t
	}
	if l.SaleAmount != nil {
		v := *l.SaleAmount
		out.SaleAmount = &v
	}
	out.CallAttempts = append([]models.CallAttempt(nil), l.CallAttempts...)
	out.Messages = append([]models.Message(nil), l.Messages...)
	return out
}
