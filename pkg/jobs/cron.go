package jobs

import (
	"context"
	"fmt"

	"github.com/premiereye/salesops/pkg/logger"
	syncpkg "github.com/premiereye/salesops/pkg/sync"
	"github.com/robfig/cron/v3"
)

// CronManager schedules the periodic background refresh so the reconciled
// snapshot stays warm between dashboard visits
type CronManager struct {
	cron        *cron.Cron
	coordinator *syncpkg.Coordinator
	log         logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(coordinator *syncpkg.Coordinator, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}
	return &CronManager{
		cron:        cron.New(),
		coordinator: coordinator,
		log:         log,
	}
}

// SetupJobs registers the refresh schedule
func (cm *CronManager) SetupJobs(intervalMinutes int) error {
	if intervalMinutes <= 0 {
		intervalMinutes = 5
	}

	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	_, err := cm.cron.AddFunc(spec, func() {
		cm.log.Info("scheduled feed refresh starting")
		cm.coordinator.RefreshAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed scheduling refresh job: %w", err)
	}

	cm.log.Info("refresh job scheduled", "interval_minutes", intervalMinutes)
	return nil
}

// Start begins running scheduled jobs
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
}
