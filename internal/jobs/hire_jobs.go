package jobs

import (
	"context"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/observability"
)

// ReleaseExpiredHires ends hires whose rental period has elapsed and puts
// their cars back into circulation. A hire still pending or confirmed with
// at least one item past its end date is moved to ended; the transition is
// conditional so a payment callback or cancellation landing at the same
// moment wins and the sweep skips the record.
func (jr *JobRunner) ReleaseExpiredHires() {
	jr.runWithRecovery("ReleaseExpiredHires", func() {
		if !jr.sweeping.CompareAndSwap(false, true) {
			logger.Warn("Expiry sweep already running, skipping this tick")
			return
		}
		defer jr.sweeping.Store(false)

		ctx := context.Background()
		hires, err := jr.hireRepo.ListExpired(ctx, jr.now())
		if err != nil {
			logger.Error("Failed to list expired hires", "error", err)
			return
		}
		if len(hires) == 0 {
			logger.Info("No expired hires to release")
			return
		}

		released := 0
		for _, hire := range hires {
			moved, err := jr.hireRepo.UpdateStatus(ctx, hire.ID,
				[]domain.HireStatus{domain.HireStatusPending, domain.HireStatusConfirmed},
				domain.HireStatusEnded)
			if err != nil {
				logger.Error("Failed to end expired hire", "hire_id", hire.ID, "error", err)
				continue
			}
			if !moved {
				// closed by another actor between listing and update
				logger.Info("Expired hire already closed, skipping", "hire_id", hire.ID)
				continue
			}

			for _, carID := range hire.CarIDs() {
				freed, err := jr.carRepo.UpdateAvailability(ctx, carID,
					[]domain.CarAvailabilityStatus{domain.CarStatusBooked},
					domain.CarStatusAvailable)
				if err != nil {
					logger.Error("Failed to release car for expired hire",
						"hire_id", hire.ID, "car_id", carID, "error", err)
					continue
				}
				if !freed {
					logger.Warn("Car not in booked state during expiry release",
						"hire_id", hire.ID, "car_id", carID)
				}
			}

			observability.HiresExpired.Inc()
			released++
		}

		logger.Info("Expiry sweep finished", "expired", len(hires), "released", released)
	})
}
