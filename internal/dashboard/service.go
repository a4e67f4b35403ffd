package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/2beens/operatorprotocol/internal/auth"
	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/hardware"
	"github.com/2beens/operatorprotocol/internal/kvstore"
	"github.com/2beens/operatorprotocol/internal/missionlog"
	"github.com/2beens/operatorprotocol/internal/progression"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"
	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

type statsService interface {
	WeeklyStats(ctx context.Context, userID int, week calendar.WeekID) (missionlog.WeeklyStats, error)
}

// View is everything the dashboard renders for one operator.
type View struct {
	WeekID           calendar.WeekID           `json:"weekId"`
	Streak           int                       `json:"streak"`
	JustCompleted    bool                      `json:"justCompleted"`
	ProtocolComplete bool                      `json:"protocolComplete"`
	Strength         int                       `json:"strength"`
	Run              int                       `json:"run"`
	Mastery          int                       `json:"mastery"`
	Evolution        progression.EvolutionTier `json:"evolution"`
	Hardware         hardware.Tier             `json:"hardware"`
	Unlocked         []hardware.Tier           `json:"unlocked"`
	Notice           *hardware.Notice          `json:"notice,omitempty"`
	Milestones       []progression.Milestone   `json:"milestones"`
}

// operatorEngines are the engines of one operator session. The machine keeps
// the locked tier notice in memory, so they live as long as the session does.
type operatorEngines struct {
	store     *progression.ProgressionStore
	streak    *progression.StreakEngine
	evolution *progression.EvolutionEngine
	machine   *hardware.Machine
}

var _ auth.SessionEndListener = (*Service)(nil)

type NewServiceParams struct {
	KV             kvstore.Store
	Stats          statsService
	Clock          calendar.Clock
	MetricsManager *metrics.Manager
}

type Service struct {
	kv             kvstore.Store
	stats          statsService
	clock          calendar.Clock
	metricsManager *metrics.Manager

	engines map[string]*operatorEngines
	mutex   sync.Mutex
}

func NewService(params NewServiceParams) *Service {
	clock := params.Clock
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{
		kv:             params.KV,
		stats:          params.Stats,
		clock:          clock,
		metricsManager: params.MetricsManager,
		engines:        map[string]*operatorEngines{},
	}
}

// Load recomputes the streak from this week's logs and returns the fresh view.
func (s *Service) Load(ctx context.Context, operator auth.Operator) (_ *View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", operator.ID))

	week := calendar.CurrentWeekID(s.clock)
	stats, err := s.stats.WeeklyStats(ctx, operator.ID, week)
	if err != nil {
		return nil, fmt.Errorf("load dashboard, weekly stats: %w", err)
	}

	e := s.enginesFor(operator)
	res, err := e.streak.CheckAndUpdate(ctx, stats.StrengthCount, stats.RunCount)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	if res.JustCompleted {
		log.Debugf("dashboard [%d]: protocol complete for week %s, streak %d", operator.ID, week, res.Streak)
	}

	view, err := s.view(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	view.WeekID = week
	view.Strength = stats.StrengthCount
	view.Run = stats.RunCount
	view.JustCompleted = res.JustCompleted
	view.ProtocolComplete = progression.IsProtocolComplete(stats.StrengthCount, stats.RunCount)
	return view, nil
}

// CompleteEvolution records that the evolution sequence for tier finished playing.
func (s *Service) CompleteEvolution(ctx context.Context, operator auth.Operator, tier progression.EvolutionTier) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.complete-evolution")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", operator.ID))
	span.SetAttributes(attribute.String("tier", tier.String()))

	e := s.enginesFor(operator)
	streak, err := e.evolution.Streak(ctx)
	if err != nil {
		return fmt.Errorf("complete evolution %s: %w", tier, err)
	}
	if streak < tier.RequiredStreak() {
		return fmt.Errorf("complete evolution %s at streak %d: %w", tier, streak, progression.ErrTierNotReached)
	}
	return e.evolution.Complete(ctx, tier)
}

// CycleHardware moves to the next unlocked hardware tier. The notice, if any,
// shows up in the following views until it expires.
func (s *Service) CycleHardware(ctx context.Context, operator auth.Operator) (_ hardware.Tier, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.cycle-hardware")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", operator.ID))

	return s.enginesFor(operator).machine.Cycle(ctx)
}

// Wipe drops all progression data of the operator.
func (s *Service) Wipe(ctx context.Context, operator auth.Operator) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.wipe")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", operator.ID))

	e := s.enginesFor(operator)
	if err := e.store.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe progression: %w", err)
	}

	s.mutex.Lock()
	delete(s.engines, operator.Token)
	s.mutex.Unlock()

	log.Printf("dashboard [%d]: progression wiped", operator.ID)
	return nil
}

// SessionEnded forgets the engines of the ended session.
func (s *Service) SessionEnded(_ context.Context, sessionToken string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.engines, sessionToken)
	return nil
}

func (s *Service) view(ctx context.Context, e *operatorEngines) (*View, error) {
	// streak first, a lazy reset demotes the hardware selection before it is read
	streak, err := e.evolution.Streak(ctx)
	if err != nil {
		return nil, err
	}
	hardwareTier, err := e.machine.ReactToExternalChange(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := e.machine.Unlocked(ctx)
	if err != nil {
		return nil, err
	}
	next, err := e.evolution.Next(ctx)
	if err != nil {
		return nil, err
	}
	mastery, err := e.streak.Mastery(ctx)
	if err != nil {
		return nil, err
	}
	milestones, err := e.streak.Milestones(ctx)
	if err != nil {
		return nil, err
	}

	view := &View{
		Streak:     streak,
		Mastery:    mastery,
		Evolution:  next,
		Hardware:   hardwareTier,
		Unlocked:   unlocked,
		Milestones: milestones,
	}
	if notice, ok := e.machine.Notice(); ok {
		view.Notice = &notice
	}
	return view, nil
}

func (s *Service) enginesFor(operator auth.Operator) *operatorEngines {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if e, ok := s.engines[operator.Token]; ok {
		return e
	}

	store := progression.NewProgressionStore(s.kv, operator.ID, operator.Token)
	streak := progression.NewStreakEngine(store, s.clock, s.metricsManager)
	evolution := progression.NewEvolutionEngine(store, streak, s.clock, s.metricsManager)
	machine := hardware.NewMachine(evolution, store, s.clock, s.metricsManager)
	streak.Subscribe(machine)
	evolution.Subscribe(machine)

	e := &operatorEngines{
		store:     store,
		streak:    streak,
		evolution: evolution,
		machine:   machine,
	}
	s.engines[operator.Token] = e
	return e
}
