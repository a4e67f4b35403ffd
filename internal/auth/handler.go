package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"
	"github.com/2beens/operatorprotocol/pkg"

	log "github.com/sirupsen/logrus"
)

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "X-SERJ-TOKEN"

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type sessionService interface {
	Login(ctx context.Context, creds Credentials) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Handler struct {
	service sessionService
}

func NewHandler(service sessionService) *Handler {
	return &Handler{
		service: service,
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "error, username or password empty", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) || errors.Is(err, ErrUserNotFound) {
			log.Warnf("login failed for [%s] from %s", creds.Username, pkg.ReadClientIP(r))
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("login: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, loginResponse{Token: token}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get(TokenHeader)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.service.Logout(ctx, token)
	if err != nil {
		// the session is gone even if some cleanup failed
		log.Errorf("logout: %s", err)
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponse(w, "logged-out", http.StatusOK)
}
