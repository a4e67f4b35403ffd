package progression

import (
	"context"

	"github.com/2beens/operatorprotocol/internal/kvstore"

	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=listener_mocks_test.go -package=progression_test

// Listener is notified after progression state changed. Engines call listeners
// outside their own locks, so a listener may query the engines back.
type Listener interface {
	StreakChanged(ctx context.Context, streak int) error
	TierUnlocked(ctx context.Context, achievement Achievement) error
}

type listeners []Listener

func (ls listeners) streakChanged(ctx context.Context, streak int) error {
	var err error
	for _, l := range ls {
		err = multierr.Append(err, l.StreakChanged(ctx, streak))
	}
	return err
}

func (ls listeners) tierUnlocked(ctx context.Context, achievement Achievement) error {
	var err error
	for _, l := range ls {
		err = multierr.Append(err, l.TierUnlocked(ctx, achievement))
	}
	return err
}

// SessionCleaner drops the session scoped flags when an auth session ends.
type SessionCleaner struct {
	kv kvstore.Store
}

func NewSessionCleaner(kv kvstore.Store) *SessionCleaner {
	return &SessionCleaner{
		kv: kv,
	}
}

func (c *SessionCleaner) SessionEnded(ctx context.Context, sessionToken string) error {
	return c.kv.ClearSession(ctx, SessionPrefix(sessionToken))
}
