package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// HRScheduler runs the recurring maintenance jobs: reverting elapsed
// suspensions, purging dead reset tokens and freezing yearly payroll.
type HRScheduler struct {
	cron        *cron.Cron
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	payrollRepo repository.PayrollRepository
	payroll     service.PayrollService
}

// NewHRScheduler creates the scheduler; Start registers and runs the
// jobs.
func NewHRScheduler(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	payrollRepo repository.PayrollRepository,
	payroll service.PayrollService,
) *HRScheduler {
	return &HRScheduler{
		cron:        cron.New(),
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		payrollRepo: payrollRepo,
		payroll:     payroll,
	}
}

// Start registers the cron jobs and starts the scheduler.
func (s *HRScheduler) Start() error {
	// every hour: lift suspensions whose end time has passed
	if _, err := s.cron.AddFunc("0 * * * *", s.revertSuspensions); err != nil {
		return err
	}

	// nightly at 03:00: drop expired and consumed reset tokens
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeResetTokens); err != nil {
		return err
	}

	// Dec 31 at 23:30: freeze the year's payroll for every company
	if _, err := s.cron.AddFunc("30 23 31 12 *", s.snapshotPayroll); err != nil {
		return err
	}

	s.cron.Start()
	logger.Get().Info("scheduler started", map[string]interface{}{
		"jobs": len(s.cron.Entries()),
	})
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (s *HRScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *HRScheduler) revertSuspensions() {
	log := logger.Get()

	users, err := s.userRepo.FindSuspensionsDue(time.Now())
	if err != nil {
		log.Error("failed to list due suspensions", err)
		return
	}

	for _, user := range users {
		if err := s.userRepo.UpdateStatus(user.ID, model.StatusActive, nil); err != nil {
			log.Error("failed to revert suspension", err, map[string]interface{}{
				"user_id": user.ID,
			})
			continue
		}
		log.Info("suspension reverted", map[string]interface{}{
			"user_id": user.ID,
		})
	}
}

func (s *HRScheduler) purgeResetTokens() {
	log := logger.Get()

	purged, err := s.resetRepo.DeleteExpired(time.Now())
	if err != nil {
		log.Error("failed to purge reset tokens", err)
		return
	}

	log.Info("reset tokens purged", map[string]interface{}{
		"count": purged,
	})
}

func (s *HRScheduler) snapshotPayroll() {
	log := logger.Get()
	year := time.Now().Year()

	companyIDs, err := s.payrollRepo.ListCompanyIDs()
	if err != nil {
		log.Error("failed to list companies for payroll snapshot", err)
		return
	}

	for _, id := range companyIDs {
		if err := s.payroll.SnapshotYear(id, year); err != nil {
			log.Error("failed to snapshot payroll", err, map[string]interface{}{
				"company_id": id,
				"year":       year,
			})
		}
	}
}
