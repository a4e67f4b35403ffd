package missionlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/operatorprotocol/internal/auth"
	"github.com/2beens/operatorprotocol/internal/calendar"
	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"
	"github.com/2beens/operatorprotocol/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=missionlog_test

type service interface {
	CreateLog(ctx context.Context, userID int, newLog NewLog) (*Log, error)
	WeeklyStats(ctx context.Context, userID int, week calendar.WeekID) (WeeklyStats, error)
	AllLogs(ctx context.Context, userID int) ([]*Log, error)
}

type Handler struct {
	service service
	clock   calendar.Clock
}

func NewHandler(service service, clock calendar.Clock) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.missionlog.create")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newLog NewLog
	if err := json.NewDecoder(r.Body).Decode(&newLog); err != nil {
		log.Errorf("new mission log, unmarshal json params: %s", err)
		http.Error(w, "add mission log failed", http.StatusBadRequest)
		return
	}

	operator, _ := auth.OperatorFromContext(ctx)
	added, err := h.service.CreateLog(ctx, operator.ID, newLog)
	if err != nil {
		writeServiceError(w, "add mission log", err)
		return
	}

	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.missionlog.list")
	defer span.End()

	operator, _ := auth.OperatorFromContext(ctx)
	logs, err := h.service.AllLogs(ctx, operator.ID)
	if err != nil {
		writeServiceError(w, "list mission logs", err)
		return
	}

	pkg.WriteJSONResponse(w, logs, http.StatusOK)
}

// HandleWeekly serves ?week=yyyy-mm-dd (any day of the week), the current week by default.
func (h *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.missionlog.weekly")
	defer span.End()

	week := calendar.CurrentWeekID(h.clock)
	if weekParam := r.URL.Query().Get("week"); weekParam != "" {
		parsed, err := calendar.ParseWeekID(weekParam)
		if err != nil {
			http.Error(w, "invalid week", http.StatusBadRequest)
			return
		}
		week = parsed
	}

	operator, _ := auth.OperatorFromContext(ctx)
	stats, err := h.service.WeeklyStats(ctx, operator.ID, week)
	if err != nil {
		writeServiceError(w, "weekly stats", err)
		return
	}

	pkg.WriteJSONResponse(w, stats, http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "no can do", http.StatusUnauthorized)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}
