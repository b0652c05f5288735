package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
)

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-secret", time.Hour)
	var seenUser, seenEmail string
	handler := RequireAuth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = GetUserID(r.Context())
		seenEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	valid, err := jwtManager.Generate("user-42", "cook@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		header     string
		wantStatus int
	}{
		{name: "valid token", method: http.MethodPost, header: "Bearer " + valid, wantStatus: http.StatusNoContent},
		{name: "missing header", method: http.MethodPost, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodPost, header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", method: http.MethodPost, header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "preflight passes", method: http.MethodOptions, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenEmail = "", ""
			req := httptest.NewRequest(tt.method, "/graphql", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusUnauthorized {
				return
			}

			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			var body remote.Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Len(t, body.Errors, 1)
			assert.Equal(t, apperr.CodeUnauthenticated, body.Errors[0].Extensions.Code)
			assert.Empty(t, seenUser)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "user-42", seenUser)
	assert.Equal(t, "cook@example.com", seenEmail)
}

func TestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("X-Request-ID", "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=503")
	assert.Contains(t, out, "request_id=req-7")
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/graphql", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	assert.True(t, called)
}
