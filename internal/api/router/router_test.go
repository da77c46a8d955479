package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/chat"
	"github.com/helprly/job-assistant/internal/helpers"
	"github.com/helprly/job-assistant/pkg/logging"
)

func newTestRouter() http.Handler {
	logger := logging.New("error")
	svc := chat.NewService(
		chat.NewMemoryStateStore(),
		catalog.NewInMemoryRepository(catalog.DefaultCategories(), catalog.DefaultQuestions()),
		helpers.NewInMemoryRepository(helpers.DefaultHelpers()),
		nil,
		logger,
	)
	return New(&Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(svc, logger),
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChatMessageEndpoint(t *testing.T) {
	r := newTestRouter()

	body := `{"message":"I need someone to clean my house","conversationId":"conv-1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "House Cleaning")
}

func TestChatMessagePreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/chat/message", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
