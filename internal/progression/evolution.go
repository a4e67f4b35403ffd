package progression

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidTier    = errors.New("invalid evolution tier")
	ErrTierNotReached = errors.New("evolution tier not reached")
)

// EvolutionTier is the reveal that should play right now. It is never persisted.
type EvolutionTier string

const (
	EvolutionNone            EvolutionTier = "NONE"
	EvolutionGBCUnlock       EvolutionTier = "GBC_UNLOCK"
	EvolutionGoldUnlock      EvolutionTier = "GOLD_UNLOCK"
	EvolutionLightningUnlock EvolutionTier = "LIGHTNING_UNLOCK"
)

func (t EvolutionTier) String() string {
	return string(t)
}

// RequiredStreak is the streak the reveal of t waits for.
func (t EvolutionTier) RequiredStreak() int {
	switch t {
	case EvolutionGBCUnlock:
		return 1
	case EvolutionGoldUnlock:
		return goldStreakThreshold
	case EvolutionLightningUnlock:
		return lightningStreakThreshold
	default:
		return 0
	}
}

func ParseEvolutionTier(s string) (EvolutionTier, error) {
	switch t := EvolutionTier(s); t {
	case EvolutionNone, EvolutionGBCUnlock, EvolutionGoldUnlock, EvolutionLightningUnlock:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
}

const (
	goldStreakThreshold      = 2
	lightningStreakThreshold = 5
)

// NextTier applies the reveal priority ladder: Lightning, then Gold, then GBC.
// GBC is a once-ever gate every other reveal waits for.
func NextTier(streak int, flags EvolutionFlags) EvolutionTier {
	gbcPending := !flags.GBCAnnounced

	if streak >= lightningStreakThreshold && !flags.LightningAnnounced && !flags.LightningAnnouncedThisSession {
		if gbcPending {
			return EvolutionGBCUnlock
		}
		return EvolutionLightningUnlock
	}
	if streak >= goldStreakThreshold && !flags.GoldAnnouncedThisSession {
		if gbcPending {
			return EvolutionGBCUnlock
		}
		return EvolutionGoldUnlock
	}
	if streak >= 1 && gbcPending {
		return EvolutionGBCUnlock
	}
	return EvolutionNone
}

type EvolutionEngine struct {
	store          *ProgressionStore
	streak         *StreakEngine
	clock          calendar.Clock
	metricsManager *metrics.Manager
	listeners      listeners

	mutex sync.Mutex
}

func NewEvolutionEngine(
	store *ProgressionStore,
	streak *StreakEngine,
	clock calendar.Clock,
	metricsManager *metrics.Manager,
) *EvolutionEngine {
	return &EvolutionEngine{
		store:          store,
		streak:         streak,
		clock:          clock,
		metricsManager: metricsManager,
	}
}

// Subscribe is not safe to call concurrently with the other methods, wire listeners up front.
func (e *EvolutionEngine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Next is safe to call on every render, it has no side effects besides the lazy streak reset.
func (e *EvolutionEngine) Next(ctx context.Context) (EvolutionTier, error) {
	streak, err := e.streak.Current(ctx)
	if err != nil {
		return EvolutionNone, fmt.Errorf("next evolution: %w", err)
	}
	flags, err := e.store.EvolutionFlags(ctx)
	if err != nil {
		return EvolutionNone, fmt.Errorf("next evolution, flags: %w", err)
	}
	return NextTier(streak, flags), nil
}

// Streak is the lazily reset streak, same as StreakEngine.Current.
func (e *EvolutionEngine) Streak(ctx context.Context) (int, error) {
	return e.streak.Current(ctx)
}

func (e *EvolutionEngine) GBCUnlocked(ctx context.Context) (bool, error) {
	return e.store.GBCUnlocked(ctx)
}

func (e *EvolutionEngine) LightningUnlocked(ctx context.Context) (bool, error) {
	return e.store.LightningUnlocked(ctx)
}

func (e *EvolutionEngine) Complete(ctx context.Context, tier EvolutionTier) error {
	switch tier {
	case EvolutionGBCUnlock:
		return e.CompleteGBCUnlock(ctx)
	case EvolutionGoldUnlock:
		return e.CompleteGoldUnlock(ctx)
	case EvolutionLightningUnlock:
		return e.CompleteLightningUnlock(ctx)
	default:
		return fmt.Errorf("complete %q: %w", tier, ErrInvalidTier)
	}
}

func (e *EvolutionEngine) CompleteGBCUnlock(ctx context.Context) error {
	e.mutex.Lock()
	newlyUnlocked, err := e.completeGBC(ctx)
	e.mutex.Unlock()
	if err != nil {
		return fmt.Errorf("complete gbc unlock: %w", err)
	}

	e.metricsManager.CounterEvolutionsCompleted.WithLabelValues(EvolutionGBCUnlock.String()).Inc()
	if !newlyUnlocked {
		return nil
	}
	log.Debugf("evolution [%s]: gbc unlocked", e.store.durablePrefix)
	if err := e.listeners.tierUnlocked(ctx, AchievementGBCUnlock); err != nil {
		return fmt.Errorf("notify gbc unlock: %w", err)
	}
	return nil
}

func (e *EvolutionEngine) CompleteGoldUnlock(ctx context.Context) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	// gold has no durable flag, it replays every session the streak still qualifies
	if err := e.store.setSessionFlag(ctx, keySessionGoldAnnounced); err != nil {
		return fmt.Errorf("complete gold unlock: %w", err)
	}
	if _, err := e.store.appendMilestone(ctx, e.unlockMilestone(AchievementGoldUnlock)); err != nil {
		return fmt.Errorf("complete gold unlock, milestone: %w", err)
	}

	e.metricsManager.CounterEvolutionsCompleted.WithLabelValues(EvolutionGoldUnlock.String()).Inc()
	return nil
}

func (e *EvolutionEngine) CompleteLightningUnlock(ctx context.Context) error {
	e.mutex.Lock()
	newlyUnlocked, err := e.completeLightning(ctx)
	e.mutex.Unlock()
	if err != nil {
		return fmt.Errorf("complete lightning unlock: %w", err)
	}

	e.metricsManager.CounterEvolutionsCompleted.WithLabelValues(EvolutionLightningUnlock.String()).Inc()
	if !newlyUnlocked {
		return nil
	}
	log.Debugf("evolution [%s]: lightning unlocked", e.store.durablePrefix)
	if err := e.listeners.tierUnlocked(ctx, AchievementLightningUnlock); err != nil {
		return fmt.Errorf("notify lightning unlock: %w", err)
	}
	return nil
}

func (e *EvolutionEngine) completeGBC(ctx context.Context) (newlyUnlocked bool, _ error) {
	flags, err := e.store.EvolutionFlags(ctx)
	if err != nil {
		return false, err
	}
	if err := e.store.setDurableFlag(ctx, keyGBCUnlocked); err != nil {
		return false, err
	}
	if err := e.store.setDurableFlag(ctx, keyGBCAnnounced); err != nil {
		return false, err
	}
	if _, err := e.store.appendMilestone(ctx, e.unlockMilestone(AchievementGBCUnlock)); err != nil {
		return false, err
	}
	return !flags.GBCUnlocked || !flags.GBCAnnounced, nil
}

func (e *EvolutionEngine) completeLightning(ctx context.Context) (newlyUnlocked bool, _ error) {
	flags, err := e.store.EvolutionFlags(ctx)
	if err != nil {
		return false, err
	}
	if err := e.store.setDurableFlag(ctx, keyLightningUnlocked); err != nil {
		return false, err
	}
	if err := e.store.setDurableFlag(ctx, keyLightningAnnounced); err != nil {
		return false, err
	}
	if err := e.store.setSessionFlag(ctx, keySessionLightningAnnounced); err != nil {
		return false, err
	}
	if _, err := e.store.appendMilestone(ctx, e.unlockMilestone(AchievementLightningUnlock)); err != nil {
		return false, err
	}
	return !flags.LightningUnlocked || !flags.LightningAnnounced, nil
}

func (e *EvolutionEngine) unlockMilestone(achievement Achievement) Milestone {
	return Milestone{
		Date:        e.clock.Now(),
		Achievement: achievement,
		Status:      unlockStatus(achievement),
		WeekID:      calendar.CurrentWeekID(e.clock),
	}
}
