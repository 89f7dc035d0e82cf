package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
)

type stubConfirmTokens struct {
	cutoff  time.Time
	deleted int64
}

func (s *stubConfirmTokens) GetOrCreate(context.Context, uuid.UUID) (*identity.ConfirmEmailToken, error) {
	return nil, shared.ErrNotFound
}
func (s *stubConfirmTokens) FindByEmailAndKey(context.Context, string, string) (*identity.ConfirmEmailToken, error) {
	return nil, shared.ErrNotFound
}
func (s *stubConfirmTokens) Delete(context.Context, uuid.UUID) error { return nil }
func (s *stubConfirmTokens) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, nil
}

type stubResetTokens struct {
	cutoff  time.Time
	deleted int64
}

func (s *stubResetTokens) Replace(context.Context, *identity.PasswordResetToken) error { return nil }
func (s *stubResetTokens) FindByEmailAndKey(context.Context, string, string) (*identity.PasswordResetToken, error) {
	return nil, shared.ErrNotFound
}
func (s *stubResetTokens) Delete(context.Context, uuid.UUID) error { return nil }
func (s *stubResetTokens) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, nil
}

func TestScheduler_CleanupExpiredTokens(t *testing.T) {
	confirm := &stubConfirmTokens{deleted: 3}
	reset := &stubResetTokens{deleted: 1}
	s := New(confirm, reset, zap.NewNop())

	before := time.Now()
	s.cleanupExpiredTokens()

	assert.WithinDuration(t, before.Add(-identity.ConfirmTokenTTL), confirm.cutoff, time.Minute)
	assert.WithinDuration(t, before.Add(-identity.PasswordResetTokenTTL), reset.cutoff, time.Minute)
}

func TestScheduler_RegisterTokenCleanup(t *testing.T) {
	s := New(&stubConfirmTokens{}, &stubResetTokens{}, zap.NewNop())

	require.NoError(t, s.RegisterTokenCleanup("0 * * * *"))
	assert.Error(t, s.RegisterTokenCleanup("not a schedule"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&stubConfirmTokens{}, &stubResetTokens{}, zap.NewNop())
	require.NoError(t, s.RegisterTokenCleanup("@hourly"))

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
