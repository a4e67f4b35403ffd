package hardware

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/progression"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const NoticeDuration = 2500 * time.Millisecond

var ErrTierLocked = errors.New("hardware tier locked")

//go:generate mockgen -source=$GOFILE -destination=machine_mocks_test.go -package=hardware_test

// Progress is the live progression state the unlocked set derives from.
type Progress interface {
	Streak(ctx context.Context) (int, error)
	GBCUnlocked(ctx context.Context) (bool, error)
}

// SelectionStore persists the chosen tier.
type SelectionStore interface {
	HardwareTier(ctx context.Context) (string, bool, error)
	SetHardwareTier(ctx context.Context, tier string) error
}

// Notice nudges towards the next locked tier, shown when cycling at the ceiling.
type Notice struct {
	Tier           Tier      `json:"tier"`
	RequiredStreak int       `json:"requiredStreak"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

var _ progression.Listener = (*Machine)(nil)

type Machine struct {
	progress       Progress
	selection      SelectionStore
	clock          calendar.Clock
	metricsManager *metrics.Manager

	notice *Notice
	mutex  sync.Mutex
}

func NewMachine(
	progress Progress,
	selection SelectionStore,
	clock calendar.Clock,
	metricsManager *metrics.Manager,
) *Machine {
	return &Machine{
		progress:       progress,
		selection:      selection,
		clock:          clock,
		metricsManager: metricsManager,
	}
}

// Current is the persisted selection, CLASSIC when none or unreadable.
func (m *Machine) Current(ctx context.Context) (Tier, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current(ctx)
}

func (m *Machine) Unlocked(ctx context.Context) ([]Tier, error) {
	streak, gbcUnlocked, err := m.readProgress(ctx)
	if err != nil {
		return nil, err
	}
	return UnlockedTiers(streak, gbcUnlocked), nil
}

func (m *Machine) Select(ctx context.Context, tier Tier) error {
	unlocked, err := m.Unlocked(ctx)
	if err != nil {
		return err
	}
	if !contains(unlocked, tier) {
		return fmt.Errorf("select %s: %w", tier, ErrTierLocked)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.persist(ctx, tier)
}

// Cycle advances to the next unlocked tier, wrapping to CLASSIC. At the ceiling it
// also raises the notice for the next locked tier, if there is one.
func (m *Machine) Cycle(ctx context.Context) (Tier, error) {
	// progress reads may notify this machine, keep them outside the lock
	unlocked, err := m.Unlocked(ctx)
	if err != nil {
		return TierClassic, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	current, err := m.current(ctx)
	if err != nil {
		return TierClassic, err
	}

	next := TierClassic
	for _, t := range unlocked {
		if t > current {
			next = t
			break
		}
	}

	if next == TierClassic {
		if locked, ok := nextLocked(current, unlocked); ok {
			m.notice = &Notice{
				Tier:           locked,
				RequiredStreak: locked.RequiredStreak(),
				ExpiresAt:      m.clock.Now().Add(NoticeDuration),
			}
			log.Tracef("hardware: %s locked, needs streak %d", locked, locked.RequiredStreak())
		}
	}

	if err := m.persist(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// ReactToExternalChange demotes the selection when it left the unlocked set.
func (m *Machine) ReactToExternalChange(ctx context.Context) (Tier, error) {
	streak, gbcUnlocked, err := m.readProgress(ctx)
	if err != nil {
		return TierClassic, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.react(ctx, UnlockedTiers(streak, gbcUnlocked))
}

// Notice returns the locked tier notice while it is still showing.
func (m *Machine) Notice() (Notice, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.notice == nil || !m.clock.Now().Before(m.notice.ExpiresAt) {
		m.notice = nil
		return Notice{}, false
	}
	return *m.notice, true
}

func (m *Machine) StreakChanged(ctx context.Context, streak int) error {
	gbcUnlocked, err := m.progress.GBCUnlocked(ctx)
	if err != nil {
		return fmt.Errorf("hardware, streak changed: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, err = m.react(ctx, UnlockedTiers(streak, gbcUnlocked))
	return err
}

func (m *Machine) TierUnlocked(ctx context.Context, achievement progression.Achievement) error {
	var tier Tier
	switch achievement {
	case progression.AchievementGBCUnlock:
		tier = TierColor
	case progression.AchievementLightningUnlock:
		tier = TierStorm
	default:
		return nil
	}

	streak, gbcUnlocked, err := m.readProgress(ctx)
	if err != nil {
		return err
	}
	unlocked := UnlockedTiers(streak, gbcUnlocked)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !contains(unlocked, tier) {
		log.Debugf("hardware: %s completed at streak %d, %s still locked", achievement, streak, tier)
		_, err := m.react(ctx, unlocked)
		return err
	}
	log.Debugf("hardware: %s unlocked, switching to %s", achievement, tier)
	return m.persist(ctx, tier)
}

func (m *Machine) react(ctx context.Context, unlocked []Tier) (Tier, error) {
	current, err := m.current(ctx)
	if err != nil {
		return TierClassic, err
	}
	if contains(unlocked, current) {
		return current, nil
	}

	demoted := demote(current, unlocked)
	if err := m.persist(ctx, demoted); err != nil {
		return current, err
	}
	m.metricsManager.CounterHardwareDemotions.Inc()
	log.Debugf("hardware: demoted %s -> %s", current, demoted)
	return demoted, nil
}

func (m *Machine) current(ctx context.Context) (Tier, error) {
	raw, ok, err := m.selection.HardwareTier(ctx)
	if err != nil {
		return TierClassic, fmt.Errorf("read hardware tier: %w", err)
	}
	if !ok {
		return TierClassic, nil
	}
	tier, err := ParseTier(raw)
	if err != nil {
		log.Debugf("hardware: corrupt stored tier %q, reading as %s", raw, TierClassic)
		return TierClassic, nil
	}
	return tier, nil
}

func (m *Machine) persist(ctx context.Context, tier Tier) error {
	if err := m.selection.SetHardwareTier(ctx, tier.String()); err != nil {
		return fmt.Errorf("persist hardware tier %s: %w", tier, err)
	}
	return nil
}

func (m *Machine) readProgress(ctx context.Context) (int, bool, error) {
	streak, err := m.progress.Streak(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("hardware, read streak: %w", err)
	}
	gbcUnlocked, err := m.progress.GBCUnlocked(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("hardware, read gbc unlock: %w", err)
	}
	return streak, gbcUnlocked, nil
}

// nextLocked is the first tier above current that is not unlocked.
func nextLocked(current Tier, unlocked []Tier) (Tier, bool) {
	for _, t := range allTiers {
		if t > current && !contains(unlocked, t) {
			return t, true
		}
	}
	return TierClassic, false
}
