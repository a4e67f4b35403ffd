package auth_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/operatorprotocol/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func loginRequest(t *testing.T, creds auth.Credentials) *http.Request {
	t.Helper()
	body, err := json.Marshal(creds)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/a/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_HandleLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksessionService(ctrl)
	h := auth.NewHandler(mockService)

	creds := auth.Credentials{Username: "operator", Password: "testpass"}
	mockService.EXPECT().Login(gomock.Any(), creds).Return("token-123", nil)

	rr := httptest.NewRecorder()
	h.HandleLogin(rr, loginRequest(t, creds))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"token":"token-123"}`, rr.Body.String())
}

func TestHandler_HandleLogin_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksessionService(ctrl)
	h := auth.NewHandler(mockService)

	// wrong content type
	rr := httptest.NewRecorder()
	req := loginRequest(t, auth.Credentials{Username: "operator", Password: "x"})
	req.Header.Set("Content-Type", "text/plain")
	h.HandleLogin(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// empty password
	rr = httptest.NewRecorder()
	h.HandleLogin(rr, loginRequest(t, auth.Credentials{Username: "operator"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	mockService.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", auth.ErrWrongPassword)
	rr = httptest.NewRecorder()
	h.HandleLogin(rr, loginRequest(t, auth.Credentials{Username: "operator", Password: "bad"}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	mockService.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
	rr = httptest.NewRecorder()
	h.HandleLogin(rr, loginRequest(t, auth.Credentials{Username: "operator", Password: "x"}))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksessionService(ctrl)
	h := auth.NewHandler(mockService)

	rr := httptest.NewRecorder()
	h.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/a/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	mockService.EXPECT().Logout(gomock.Any(), "token-123").Return(true, nil)
	req := httptest.NewRequest(http.MethodPost, "/a/logout", nil)
	req.Header.Set(auth.TokenHeader, "token-123")
	rr = httptest.NewRecorder()
	h.HandleLogout(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())

	mockService.EXPECT().Logout(gomock.Any(), "stale").Return(false, nil)
	req = httptest.NewRequest(http.MethodPost, "/a/logout", nil)
	req.Header.Set(auth.TokenHeader, "stale")
	rr = httptest.NewRecorder()
	h.HandleLogout(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
