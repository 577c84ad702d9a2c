package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hs-chat-be/internal/dto"
	"hs-chat-be/internal/service"
	"hs-chat-be/pkg/llm"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubChatService struct {
	res *dto.SendChatResponse
	err error
}

func (s *stubChatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	return s.res, s.err
}

func newTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewChatController(svc, noopLogger{}, true).RegisterRoutes(api)
	NewScenarioController().RegisterRoutes(api)
	return app
}

func postChat(t *testing.T, app *fiber.App, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSendChatOK(t *testing.T) {
	app := newTestApp(&stubChatService{res: &dto.SendChatResponse{
		Response: "We offer scholarships.\n\nSource: https://harbour.space/scholarships",
		Type:     "text",
		Scenario: "finance",
		Source:   "https://harbour.space/scholarships",
	}})

	resp := postChat(t, app, dto.SendChatRequest{Message: "scholarships?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.SendChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "finance", got.Scenario)
	assert.Contains(t, got.Response, "Source:")
}

func TestSendChatErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"auth failure", llm.ErrAuthFailed, http.StatusUnauthorized},
		{"internal failure", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubChatService{err: tt.err})
			resp := postChat(t, app, dto.SendChatRequest{Message: "x"})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSendChatRejectsBadHistoryRole(t *testing.T) {
	app := newTestApp(&stubChatService{res: &dto.SendChatResponse{Response: "ok", Type: "text"}})

	resp := postChat(t, app, dto.SendChatRequest{
		Message: "hi",
		History: []dto.HistoryMessageDTO{{Role: "wizard", Content: "abracadabra"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendChatRejectsMalformedBody(t *testing.T) {
	app := newTestApp(&stubChatService{})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubChatService{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "ok", got.Status)
	assert.True(t, got.OpenAIConfigured)
	assert.NotEmpty(t, got.Timestamp)
}

func TestListScenarios(t *testing.T) {
	app := newTestApp(&stubChatService{})
	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Scenarios []struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Scenarios, 22)
}
