package kvstore

import (
	"context"
	"errors"
	"fmt"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// Store holds string values under namespaced keys with two lifetimes:
// durable values survive restarts, session values are dropped when the
// owning session ends.
type Store interface {
	GetDurable(ctx context.Context, key string) (string, bool, error)
	SetDurable(ctx context.Context, key, value string) error
	RemoveDurable(ctx context.Context, key string) error

	GetSession(ctx context.Context, key string) (string, bool, error)
	SetSession(ctx context.Context, key, value string) error
	RemoveSession(ctx context.Context, key string) error

	// ClearAllNamespaced removes every durable key beginning with prefix.
	ClearAllNamespaced(ctx context.Context, prefix string) error
	// ClearSession removes every session key beginning with prefix.
	ClearSession(ctx context.Context, prefix string) error
}

type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemovePrefix(ctx context.Context, prefix string) error
}

var _ Store = (*Adapter)(nil)

type Adapter struct {
	durable Backend
	session Backend
}

func NewAdapter(durable, session Backend) *Adapter {
	return &Adapter{
		durable: durable,
		session: session,
	}
}

// NewMemoryAdapter is backed entirely by process memory, used by tests and offline tools.
func NewMemoryAdapter() *Adapter {
	return NewAdapter(NewMemoryBackend(), NewMemoryBackend())
}

func (a *Adapter) GetDurable(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := a.durable.Get(ctx, key)
	if err != nil {
		return "", false, unavailable("get durable", key, err)
	}
	return val, ok, nil
}

func (a *Adapter) SetDurable(ctx context.Context, key, value string) error {
	if err := a.durable.Set(ctx, key, value); err != nil {
		return unavailable("set durable", key, err)
	}
	return nil
}

func (a *Adapter) RemoveDurable(ctx context.Context, key string) error {
	if err := a.durable.Remove(ctx, key); err != nil {
		return unavailable("remove durable", key, err)
	}
	return nil
}

func (a *Adapter) GetSession(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := a.session.Get(ctx, key)
	if err != nil {
		return "", false, unavailable("get session", key, err)
	}
	return val, ok, nil
}

func (a *Adapter) SetSession(ctx context.Context, key, value string) error {
	if err := a.session.Set(ctx, key, value); err != nil {
		return unavailable("set session", key, err)
	}
	return nil
}

func (a *Adapter) RemoveSession(ctx context.Context, key string) error {
	if err := a.session.Remove(ctx, key); err != nil {
		return unavailable("remove session", key, err)
	}
	return nil
}

func (a *Adapter) ClearAllNamespaced(ctx context.Context, prefix string) error {
	if err := a.durable.RemovePrefix(ctx, prefix); err != nil {
		return unavailable("clear durable", prefix, err)
	}
	return nil
}

func (a *Adapter) ClearSession(ctx context.Context, prefix string) error {
	if err := a.session.RemovePrefix(ctx, prefix); err != nil {
		return unavailable("clear session", prefix, err)
	}
	return nil
}

func unavailable(op, key string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s [%s]: %w", op, key, err)
	}
	return fmt.Errorf("%s [%s]: %w: %w", op, key, ErrStoreUnavailable, err)
}
