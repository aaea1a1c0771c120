package store

import (
	"testing"
	"time"

	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/testdata"
	"github.com/premiereye/salesops/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchWithName(id, name string) models.LeadPatch {
	return models.LeadPatch{ID: id, Name: models.StrPtr(name)}
}

func TestMergeAll(t *testing.T) {
	t.Run("Creates a lead on first sighting", func(t *testing.T) {
		s := New()
		s.MergeAll([]models.LeadPatch{patchWithName("1", "Ana Torres")})

		lead, ok := s.Get("1")
		require.True(t, ok)
		assert.Equal(t, "Ana Torres", lead.Name)
		assert.False(t, lead.DateCaptured.IsZero(), "capture time defaults to first sighting")
	})

	t.Run("Absent fields never clobber merged state", func(t *testing.T) {
		s := New()
		amount := 450.0
		s.MergeAll([]models.LeadPatch{{
			ID:         "1",
			Name:       models.StrPtr("Ana Torres"),
			SaleAmount: &amount,
			Notes:      models.StrPtr("follow up Tuesday"),
		}})

		// A second feed that only knows identity and stage
		s.MergeAll([]models.LeadPatch{{
			ID:            "1",
			Name:          models.StrPtr("Ana Torres"),
			PipelineStage: models.StagePtr(vocab.StageBooked),
		}})

		lead, ok := s.Get("1")
		require.True(t, ok)
		assert.Equal(t, vocab.StageBooked, lead.PipelineStage)
		require.NotNil(t, lead.SaleAmount)
		assert.Equal(t, 450.0, *lead.SaleAmount)
		assert.Equal(t, "follow up Tuesday", lead.Notes)
	})

	t.Run("Idempotent - applying a batch twice converges", func(t *testing.T) {
		captured := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		batch := []models.LeadPatch{{
			ID:           "7",
			Name:         models.StrPtr("Ben Ruiz"),
			Status:       models.StatusPtr(vocab.StatusApptBooked),
			DateCaptured: &captured,
		}}

		s := New()
		s.MergeAll(batch)
		first, _ := s.Get("7")
		s.MergeAll(batch)
		second, _ := s.Get("7")

		assert.Equal(t, first, second)
	})

	t.Run("Commutative for disjoint fields", func(t *testing.T) {
		amount := 300.0
		a := []models.LeadPatch{{ID: "9", Name: models.StrPtr("Cara Li"), SaleAmount: &amount}}
		b := []models.LeadPatch{{ID: "9", Status: models.StatusPtr(vocab.StatusNoShow), Email: models.StrPtr("cara@example.com")}}

		s1 := New()
		s1.MergeAll(a)
		s1.MergeAll(b)
		l1, _ := s1.Get("9")

		s2 := New()
		s2.MergeAll(b)
		s2.MergeAll(a)
		l2, _ := s2.Get("9")

		l1.DateCaptured = time.Time{}
		l2.DateCaptured = time.Time{}
		assert.Equal(t, l1, l2)
	})

	t.Run("Empty id is skipped", func(t *testing.T) {
		s := New()
		s.MergeAll([]models.LeadPatch{{Name: models.StrPtr("ghost")}})
		assert.Equal(t, 0, s.Len())
	})
}

func TestMergeAllSliceFieldsReplaceWholesale(t *testing.T) {
	s := New()

	twoCalls := []models.CallAttempt{
		{ID: "1-call-1", Outcome: models.OutcomeVoicemail},
		{ID: "1-call-2", Outcome: models.OutcomeAnswered},
	}
	s.MergeAll([]models.LeadPatch{{ID: "1", CallAttempts: &twoCalls}})

	oneCall := []models.CallAttempt{{ID: "1-call-3", Outcome: models.OutcomeBooked}}
	s.MergeAll([]models.LeadPatch{{ID: "1", CallAttempts: &oneCall}})

	lead, ok := s.Get("1")
	require.True(t, ok)
	require.Len(t, lead.CallAttempts, 1, "non-nil slice replaces, never appends")
	assert.Equal(t, "1-call-3", lead.CallAttempts[0].ID)

	// A patch without the slice leaves it alone
	s.MergeAll([]models.LeadPatch{patchWithName("1", "renamed")})
	lead, _ = s.Get("1")
	assert.Len(t, lead.CallAttempts, 1)
}

func TestPatch(t *testing.T) {
	t.Run("Success - updates one lead", func(t *testing.T) {
		s := New()
		s.MergeAll([]models.LeadPatch{patchWithName("1", "Ana Torres")})

		s.Patch("1", models.LeadPatch{
			Status:        models.StatusPtr(vocab.StatusApptBooked),
			PipelineStage: models.StagePtr(vocab.StageBooked),
		})

		lead, _ := s.Get("1")
		assert.Equal(t, vocab.StatusApptBooked, lead.Status)
		assert.Equal(t, vocab.StageBooked, lead.PipelineStage)
		assert.Equal(t, "Ana Torres", lead.Name)
	})

	t.Run("Unknown id is a silent no-op", func(t *testing.T) {
		s := New()
		s.Patch("404", models.LeadPatch{Status: models.StatusPtr(vocab.StatusNoShow)})
		assert.Equal(t, 0, s.Len())
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("Ordered by appointment date then capture date, newest first", func(t *testing.T) {
		s := New()
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		appt := base.Add(72 * time.Hour)
		older := base.Add(-24 * time.Hour)

		s.MergeAll([]models.LeadPatch{
			{ID: "a", DateCaptured: &base},
			{ID: "b", DateCaptured: &older, AppointmentDate: &appt},
			{ID: "c", DateCaptured: &older},
		})

		snap := s.Snapshot()
		require.Len(t, snap, 3)
		assert.Equal(t, "b", snap[0].ID, "appointment date outranks capture date")
		assert.Equal(t, "a", snap[1].ID)
		assert.Equal(t, "c", snap[2].ID)
	})

	t.Run("Ties break on id for a stable order", func(t *testing.T) {
		s := New()
		ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s.MergeAll([]models.LeadPatch{
			{ID: "z", DateCaptured: &ts},
			{ID: "a", DateCaptured: &ts},
		})

		snap := s.Snapshot()
		assert.Equal(t, "a", snap[0].ID)
		assert.Equal(t, "z", snap[1].ID)
	})

	t.Run("Mutating the snapshot never touches store state", func(t *testing.T) {
		s := New()
		calls := []models.CallAttempt{{ID: "1-call-1"}}
		s.MergeAll([]models.LeadPatch{{ID: "1", CallAttempts: &calls}})

		snap := s.Snapshot()
		snap[0].Name = "mutated"
		snap[0].CallAttempts[0].ID = "mutated"

		lead, _ := s.Get("1")
		assert.Empty(t, lead.Name)
		assert.Equal(t, "1-call-1", lead.CallAttempts[0].ID)
	})
}

// Three feeds mention the same lead id with partial, overlapping views; the
// store must end up with the union regardless of arrival order.
func TestThreeFeedsOneLead(t *testing.T) {
	alerts := []models.LeadPatch{{
		ID:     "42",
		Name:   models.StrPtr("Dara Okafor"),
		Status: models.StatusPtr(vocab.StatusNeedsFollowUp),
	}}
	amount := 1200.0
	appt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	recent := []models.LeadPatch{{
		ID:              "42",
		Name:            models.StrPtr("Dara Okafor"),
		Email:           models.StrPtr("dara@example.com"),
		AppointmentDate: &appt,
		SaleAmount:      &amount,
	}}
	pipeline := []models.LeadPatch{{
		ID:            "42",
		Name:          models.StrPtr("Dara Okafor"),
		Status:        models.StatusPtr(vocab.StatusApptBooked),
		PipelineStage: models.StagePtr(vocab.StageBooked),
	}}

	s := New()
	s.MergeAll(recent)
	s.MergeAll(pipeline)
	s.MergeAll(alerts)

	require.Equal(t, 1, s.Len(), "one lead per id no matter how many feeds mention it")

	lead, _ := s.Get("42")
	assert.Equal(t, "dara@example.com", lead.Email)
	assert.Equal(t, vocab.StageBooked, lead.PipelineStage)
	require.NotNil(t, lead.AppointmentDate)
	assert.True(t, appt.Equal(*lead.AppointmentDate))
	require.NotNil(t, lead.SaleAmount)
	assert.Equal(t, 1200.0, *lead.SaleAmount)
	// Last writer wins on the contested status field
	assert.Equal(t, vocab.StatusNeedsFollowUp, lead.Status)
}

func TestMergeAllBulk(t *testing.T) {
	patches := testdata.GeneratePatches(testdata.GeneratorConfig{
		Count:            200,
		AppointmentRatio: 0.3,
		SaleRatio:        0.2,
		Seed:             1,
	})

	s := New()
	s.MergeAll(patches)
	require.Equal(t, 200, s.Len())

	s.MergeAll(patches)
	assert.Equal(t, 200, s.Len(), "re-merging the same batch creates nothing")

	snap := s.Snapshot()
	for i := 1; i < len(snap); i++ {
		assert.False(t, sortKey(snap[i-1]).Before(sortKey(snap[i])), "snapshot out of order at %d", i)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.MergeAll([]models.LeadPatch{patchWithName("1", "Ana"), patchWithName("2", "Ben")})
	require.Equal(t, 2, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("1")
	assert.False(t, ok)
}
