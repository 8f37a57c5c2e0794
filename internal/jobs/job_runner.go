package jobs

import (
	"sync/atomic"
	"time"

	"jeffika-cabs-backend/internal/config"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	hireRepo repository.HireRepository
	carRepo  repository.CarRepository
	config   *config.Config
	now      func() time.Time

	sweeping atomic.Bool // prevents overlapping expiry sweeps
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(hireRepo repository.HireRepository, carRepo repository.CarRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		hireRepo: hireRepo,
		carRepo:  carRepo,
		config:   cfg,
		now:      time.Now,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
