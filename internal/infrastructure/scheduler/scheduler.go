package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/identity"
)

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	cron          *cron.Cron
	confirmTokens identity.ConfirmEmailTokenRepository
	resetTokens   identity.PasswordResetTokenRepository
	logger        *zap.Logger
}

// New creates a scheduler with the standard maintenance jobs registered
func New(
	confirmTokens identity.ConfirmEmailTokenRepository,
	resetTokens identity.PasswordResetTokenRepository,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		confirmTokens: confirmTokens,
		resetTokens:   resetTokens,
		logger:        logger,
	}
}

// RegisterTokenCleanup schedules the expired-token purge
func (s *Scheduler) RegisterTokenCleanup(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.cleanupExpiredTokens)
	if err != nil {
		return fmt.Errorf("invalid token cleanup schedule %q: %w", schedule, err)
	}
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop waits for running jobs to finish and stops the scheduler
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	confirmed, err := s.confirmTokens.DeleteExpired(ctx, now.Add(-identity.ConfirmTokenTTL))
	if err != nil {
		s.logger.Error("failed to purge expired confirmation tokens", zap.Error(err))
	}

	resets, err := s.resetTokens.DeleteExpired(ctx, now.Add(-identity.PasswordResetTokenTTL))
	if err != nil {
		s.logger.Error("failed to purge expired reset tokens", zap.Error(err))
	}

	if confirmed > 0 || resets > 0 {
		s.logger.Info("purged expired tokens",
			zap.Int64("confirmation_tokens", confirmed),
			zap.Int64("reset_tokens", resets),
		)
	}
}
