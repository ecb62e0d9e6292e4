package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"agentic-landing-site/config"
	"agentic-landing-site/internal/repository/contactapi"
	"agentic-landing-site/internal/usecase"
	"agentic-landing-site/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		Environment:               "test",
		ServiceName:               "agentic-landing-site",
		ContactAPIBaseURL:         backendURL,
		AllowedOrigins:            []string{"http://localhost:3000"},
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 5,
		RateLimitGlobalThreshold:  1000,
		FormSessionTTLMinutes:     30,
		FormSessionMax:            100,
	}
}

// newTestRouter wires the real usecases against a fake contact backend
func newTestRouter(t *testing.T, backend http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := contactapi.NewGateway(cfg.ContactAPIBaseURL, srv.Client())

	return NewRouter(RouterDeps{
		ContentUC: usecase.NewContentUsecase(),
		FormUC: usecase.NewFormSessionUsecase(gateway, validation.New(), log, nil, usecase.FormSessionConfig{
			TTL:      cfg.FormSessionTTL(),
			MaxForms: cfg.FormSessionMax,
		}),
		HealthUC: usecase.NewHealthUsecase(cfg.ContactAPIBaseURL, nil),
		Config:   cfg,
	})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func acceptAll(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"success":true}`))
}
