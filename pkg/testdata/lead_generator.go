package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/vocab"
)

// GeneratorConfig configures lead-patch generation for tests
type GeneratorConfig struct {
	Count            int
	AppointmentRatio float64 // 0.0-1.0 probability of a scheduled appointment
	SaleRatio        float64 // probability of a recorded sale
	Seed             int64
}

var services = []string{
	"Comprehensive Exam",
	"Contact Lens Fitting",
	"Dry Eye Treatment",
	"LASIK Consult",
}

var sources = []string{"Facebook", "Google", "Referral", "Walk-in"}

// GeneratePatches produces realistic lead patches for seeding a store in
// tests. Deterministic for a fixed seed.
func GeneratePatches(cfg GeneratorConfig) []models.LeadPatch {
	faker := gofakeit.New(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	patches := make([]models.LeadPatch, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		status := vocab.AllStatuses[rng.Intn(len(vocab.AllStatuses))]
		captured := time.Now().UTC().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

		patch := models.LeadPatch{
			ID:           fmt.Sprintf("%d", 1000+i),
			Name:         models.StrPtr(faker.Name()),
			Phone:        models.StrPtr(faker.Phone()),
			Email:        models.StrPtr(faker.Email()),
			Location:     models.StrPtr(vocab.Locations[rng.Intn(len(vocab.Locations))]),
			Source:       models.StrPtr(sources[rng.Intn(len(sources))]),
			Status:       models.StatusPtr(status),
			Service:      models.StrPtr(services[rng.Intn(len(services))]),
			Insurance:    models.StrPtr(vocab.InsuranceProviders[rng.Intn(len(vocab.InsuranceProviders))]),
			DateCaptured: &captured,
		}

		if stage, ok := vocab.StatusToStage(status); ok {
			patch.PipelineStage = models.StagePtr(stage)
		}
		if rng.Float64() < cfg.AppointmentRatio {
			appt := captured.Add(time.Duration(rng.Intn(14*24)) * time.Hour)
			patch.AppointmentDate = &appt
		}
		if rng.Float64() < cfg.SaleRatio {
			amount := float64(100 + rng.Intn(900))
			patch.SaleAmount = &amount
		}

		attempts := []models.CallAttempt{{
			ID:      patch.ID + "-ai-1",
			TS:      captured,
			Outcome: models.OutcomeAnswered,
			Summary: faker.Sentence(8),
		}}
		patch.CallAttempts = &attempts

		messages := []models.Message{{
			ID:   patch.ID + "-msg-1",
			From: models.FromLead,
			Text: faker.Sentence(6),
			TS:   captured,
		}}
		patch.Messages = &messages

		patches = append(patches, patch)
	}
	return patches
}
