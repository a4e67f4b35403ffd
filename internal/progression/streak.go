package progression

import (
	"context"
	"fmt"
	"sync"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	protocolStrengthTarget = 4
	protocolRunTarget      = 2
)

type Result struct {
	Streak        int  `json:"streak"`
	JustCompleted bool `json:"justCompleted"`
}

// IsProtocolComplete reports whether the weekly counts pass the 4-2 protocol.
func IsProtocolComplete(strengthCount, runCount int) bool {
	return strengthCount >= protocolStrengthTarget && runCount >= protocolRunTarget
}

type StreakEngine struct {
	store          *ProgressionStore
	clock          calendar.Clock
	metricsManager *metrics.Manager
	listeners      listeners

	mutex sync.Mutex
}

func NewStreakEngine(
	store *ProgressionStore,
	clock calendar.Clock,
	metricsManager *metrics.Manager,
) *StreakEngine {
	return &StreakEngine{
		store:          store,
		clock:          clock,
		metricsManager: metricsManager,
	}
}

// Subscribe is not safe to call concurrently with the other methods, wire listeners up front.
func (e *StreakEngine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Current returns the streak, zeroing a lapsed one on the way. Always use it
// instead of the raw stored count.
func (e *StreakEngine) Current(ctx context.Context) (int, error) {
	e.mutex.Lock()
	streak, reset, err := e.current(ctx, calendar.CurrentWeekID(e.clock))
	e.mutex.Unlock()
	if err != nil {
		return 0, fmt.Errorf("current streak: %w", err)
	}

	if reset {
		if err := e.listeners.streakChanged(ctx, streak); err != nil {
			return streak, fmt.Errorf("notify streak reset: %w", err)
		}
	}
	return streak, nil
}

// CheckAndUpdate records this week's protocol completion. JustCompleted is true
// exactly once per qualifying week.
func (e *StreakEngine) CheckAndUpdate(ctx context.Context, strengthCount, runCount int) (Result, error) {
	week := calendar.CurrentWeekID(e.clock)

	e.mutex.Lock()
	res, changed, err := e.checkAndUpdate(ctx, week, strengthCount, runCount)
	e.mutex.Unlock()
	if err != nil {
		return Result{}, fmt.Errorf("check and update streak: %w", err)
	}

	if changed {
		if err := e.listeners.streakChanged(ctx, res.Streak); err != nil {
			return res, fmt.Errorf("notify streak change: %w", err)
		}
	}
	return res, nil
}

func (e *StreakEngine) Mastery(ctx context.Context) (int, error) {
	return e.store.Mastery(ctx)
}

func (e *StreakEngine) Milestones(ctx context.Context) ([]Milestone, error) {
	return e.store.Milestones(ctx)
}

// current expects the mutex to be held. reset is true when a nonzero streak was zeroed.
func (e *StreakEngine) current(ctx context.Context, week calendar.WeekID) (_ int, reset bool, _ error) {
	state, err := e.store.StreakState(ctx)
	if err != nil {
		return 0, false, err
	}

	if !lapsed(state, week) {
		return state.Count, false, nil
	}
	if state.Count == 0 && state.LastCompletedWeek == "" {
		return 0, false, nil
	}

	log.Debugf("streak lapsed [%s]: last completed week %q, count %d", e.store.durablePrefix, state.LastCompletedWeek, state.Count)
	hadStreak := state.Count != 0
	state.Count = 0
	state.LastCompletedWeek = ""
	if err := e.store.SetStreakState(ctx, state); err != nil {
		return 0, false, err
	}
	if !hadStreak {
		return 0, false, nil
	}
	e.metricsManager.CounterStreakResets.Inc()
	return 0, true, nil
}

func (e *StreakEngine) checkAndUpdate(
	ctx context.Context,
	week calendar.WeekID,
	strengthCount, runCount int,
) (_ Result, changed bool, _ error) {
	if !IsProtocolComplete(strengthCount, runCount) {
		streak, reset, err := e.current(ctx, week)
		return Result{Streak: streak}, reset, err
	}

	state, err := e.store.StreakState(ctx)
	if err != nil {
		return Result{}, false, err
	}
	if state.CelebratedWeek == week {
		streak, reset, err := e.current(ctx, week)
		return Result{Streak: streak}, reset, err
	}

	count := state.Count
	if lapsed(state, week) {
		count = 0
	}
	count++

	if err := e.store.SetStreakState(ctx, StreakState{
		Count:             count,
		LastCompletedWeek: week,
		CelebratedWeek:    week,
	}); err != nil {
		return Result{}, false, err
	}

	mastery, err := e.store.Mastery(ctx)
	if err != nil {
		return Result{}, false, err
	}
	if err := e.store.SetMastery(ctx, mastery+1); err != nil {
		return Result{}, false, err
	}

	if count >= 2 {
		if _, err := e.store.appendMilestone(ctx, Milestone{
			Date:        e.clock.Now(),
			Achievement: AchievementGoldStatus,
			Status:      goldStatus(count),
			WeekID:      week,
		}); err != nil {
			return Result{}, false, err
		}
	}

	e.metricsManager.CounterProtocolCompletions.Inc()
	log.Debugf("protocol complete [%s]: week %s, streak %d", e.store.durablePrefix, week, count)

	return Result{Streak: count, JustCompleted: true}, true, nil
}

// lapsed is true when more than one week passed since the last completed week,
// or when there is no completed week at all.
func lapsed(state StreakState, week calendar.WeekID) bool {
	if state.LastCompletedWeek == "" {
		return true
	}
	diff, err := calendar.WeekDiff(week, state.LastCompletedWeek)
	if err != nil {
		return true
	}
	return diff > 1
}
