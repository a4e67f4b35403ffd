package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/operatorprotocol/internal/auth"
	"github.com/2beens/operatorprotocol/internal/hardware"
	"github.com/2beens/operatorprotocol/internal/progression"
	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"
	"github.com/2beens/operatorprotocol/internal/workout"
	"github.com/2beens/operatorprotocol/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type service interface {
	Load(ctx context.Context, operator auth.Operator) (*View, error)
	CompleteEvolution(ctx context.Context, operator auth.Operator, tier progression.EvolutionTier) error
	CycleHardware(ctx context.Context, operator auth.Operator) (hardware.Tier, error)
	Wipe(ctx context.Context, operator auth.Operator) error
}

type routineCatalog interface {
	Get(id string) (workout.Routine, error)
	List() []workout.Routine
}

type Handler struct {
	service service
	catalog routineCatalog
}

func NewHandler(service service, catalog routineCatalog) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
	}
}

type cycleResponse struct {
	Hardware hardware.Tier `json:"hardware"`
}

type routineSteps struct {
	Routine  workout.Routine `json:"routine"`
	Steps    []workout.Step  `json:"steps"`
	Total    int             `json:"totalSeconds"`
	Redirect string          `json:"redirect"`
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	operator, ok := auth.OperatorFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	view, err := h.service.Load(ctx, operator)
	if err != nil {
		log.Errorf("load dashboard [%d]: %s", operator.ID, err)
		http.Error(w, "load dashboard failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, view, http.StatusOK)
}

func (h *Handler) HandleCompleteEvolution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.complete-evolution")
	defer span.End()

	operator, ok := auth.OperatorFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	tier, err := progression.ParseEvolutionTier(mux.Vars(r)["tier"])
	if err != nil || tier == progression.EvolutionNone {
		http.Error(w, "invalid evolution tier", http.StatusBadRequest)
		return
	}

	if err := h.service.CompleteEvolution(ctx, operator, tier); err != nil {
		if errors.Is(err, progression.ErrInvalidTier) {
			http.Error(w, "invalid evolution tier", http.StatusBadRequest)
			return
		}
		if errors.Is(err, progression.ErrTierNotReached) {
			http.Error(w, "evolution tier not reached", http.StatusConflict)
			return
		}
		log.Errorf("complete evolution %s [%d]: %s", tier, operator.ID, err)
		http.Error(w, "complete evolution failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponse(w, "ok", http.StatusOK)
}

func (h *Handler) HandleCycleHardware(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.cycle-hardware")
	defer span.End()

	operator, ok := auth.OperatorFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	tier, err := h.service.CycleHardware(ctx, operator)
	if err != nil {
		log.Errorf("cycle hardware [%d]: %s", operator.ID, err)
		http.Error(w, "cycle hardware failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, cycleResponse{Hardware: tier}, http.StatusOK)
}

func (h *Handler) HandleWipe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.wipe")
	defer span.End()

	operator, ok := auth.OperatorFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.Wipe(ctx, operator); err != nil {
		log.Errorf("wipe progression [%d]: %s", operator.ID, err)
		http.Error(w, "wipe failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponse(w, "wiped", http.StatusOK)
}

func (h *Handler) HandleRoutines(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.routines")
	defer span.End()

	pkg.WriteJSONResponse(w, h.catalog.List(), http.StatusOK)
}

func (h *Handler) HandleRoutineSteps(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.routine-steps")
	defer span.End()

	routine, err := h.catalog.Get(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, workout.ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("get routine: %s", err)
		http.Error(w, "get routine failed", http.StatusInternalServerError)
		return
	}

	steps, err := routine.Steps()
	if err != nil {
		log.Errorf("routine %s steps: %s", routine.ID, err)
		http.Error(w, "routine steps failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, routineSteps{
		Routine:  routine,
		Steps:    steps,
		Total:    workout.TotalDuration(steps),
		Redirect: routine.RedirectPath(),
	}, http.StatusOK)
}
