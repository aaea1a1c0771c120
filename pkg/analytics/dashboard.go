package analytics

import (
	"time"

	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/vocab"
)

// Compute aggregates dashboard metrics over a snapshot of the lead store.
// Pure and stateless: callers pull it whenever they need fresh numbers. An
// empty snapshot yields all zeros.
func Compute(leads []models.Lead, now time.Time) models.DashboardMetrics {
	m := models.DashboardMetrics{
		Total: len(leads),
	}

	for _, lead := range leads {
		if sameLocalDay(lead.DateCaptured, now) {
			m.NewToday++
		}

		switch lead.Status {
		case vocab.StatusApptBooked:
			m.Booked++
		case vocab.StatusApptCompleted:
			m.Completed++
		}

		if lead.SaleAmount != nil {
			m.Revenue += *lead.SaleAmount
		}

		m.CallsMade += len(lead.CallAttempts)
		for _, call := range lead.CallAttempts {
			if call.Outcome == models.OutcomeAnswered {
				m.CallsAnswered++
			}
		}

		m.MessagesTotal += len(lead.Messages)
	}

	if m.CallsMade > 0 {
		m.AnswerRate = float64(m.CallsAnswered) / float64(m.CallsMade)
	}

	return m
}

// sameLocalDay compares two instants in now's location; "new today" means
// the same calendar day on the operator's wall clock.
func sameLocalDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
