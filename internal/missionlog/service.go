package missionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"
	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/codes"
)

// logs dated further than this into the future are rejected
const maxClockSkew = 24 * time.Hour

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=missionlog

type logsRepo interface {
	Add(ctx context.Context, log Log) (*Log, error)
	List(ctx context.Context, userID int) ([]*Log, error)
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]*Log, error)
}

type Service struct {
	repo           logsRepo
	clock          calendar.Clock
	location       *time.Location
	metricsManager *metrics.Manager
}

type NewServiceParams struct {
	Repo           logsRepo
	Clock          calendar.Clock
	Location       *time.Location
	MetricsManager *metrics.Manager
}

func NewService(params NewServiceParams) *Service {
	if params.Clock == nil {
		params.Clock = calendar.SystemClock{}
	}
	if params.Location == nil {
		params.Location = time.Local
	}
	return &Service{
		repo:           params.Repo,
		clock:          params.Clock,
		location:       params.Location,
		metricsManager: params.MetricsManager,
	}
}

func (s *Service) CreateLog(ctx context.Context, userID int, newLog NewLog) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.missionlog.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	if !newLog.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, newLog.Category)
	}
	now := s.clock.Now()
	if newLog.Date.IsZero() {
		return nil, fmt.Errorf("%w: missing date", ErrValidation)
	}
	if newLog.Date.After(now.Add(maxClockSkew)) {
		return nil, fmt.Errorf("%w: date %s is in the future", ErrValidation, newLog.Date.Format(time.RFC3339))
	}

	log, err := s.repo.Add(ctx, Log{
		UserID:    userID,
		Category:  newLog.Category,
		Date:      newLog.Date,
		Metadata:  newLog.Metadata,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("add mission log: %w", err)
	}

	s.metricsManager.CounterMissionLogs.WithLabelValues(newLog.Category.String()).Inc()
	return log, nil
}

// WeeklyStats counts the user's logs in the given week, in the service's location.
func (s *Service) WeeklyStats(ctx context.Context, userID int, week calendar.WeekID) (_ WeeklyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.missionlog.weeklystats")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if userID <= 0 {
		return WeeklyStats{}, ErrUnauthenticated
	}

	from, err := week.Start(s.location)
	if err != nil {
		return WeeklyStats{}, err
	}
	to, err := week.End(s.location)
	if err != nil {
		return WeeklyStats{}, err
	}

	logs, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return WeeklyStats{}, fmt.Errorf("list week %s logs: %w", week, err)
	}

	stats := WeeklyStats{
		WeekID:      week,
		HabitsByDay: make(map[string][]Category),
	}
	for _, l := range logs {
		switch l.Category {
		case CategoryStrength:
			stats.StrengthCount++
		case CategoryRun:
			stats.RunCount++
		}
		day := l.Date.In(s.location).Format(time.DateOnly)
		stats.HabitsByDay[day] = append(stats.HabitsByDay[day], l.Category)
	}

	return stats, nil
}

func (s *Service) AllLogs(ctx context.Context, userID int) (_ []*Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.missionlog.all")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	logs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}
