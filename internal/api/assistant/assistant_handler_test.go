package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessRequest(ctx context.Context, userText string) (string, error) {
	args := m.Called(ctx, userText)
	return args.String(0), args.Error(1)
}

func newTestHandler() (*Handler, *MockService) {
	mockService := new(MockService)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewHandler(mockService, logger), mockService
}

func postQuery(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.Query(rr, req)
	return rr
}

func TestQueryHandler_Success(t *testing.T) {
	handler, mockService := newTestHandler()
	mockService.On("ProcessRequest", mock.Anything, "weather in Paris").
		Return("In Paris it's currently 18°C with a chance of 10% to rain.", nil).Once()

	rr := postQuery(t, handler, `{"query": "weather in Paris"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.QueryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "In Paris it's currently 18°C with a chance of 10% to rain.", resp.Response)
}

func TestQueryHandler_EmptyQuery(t *testing.T) {
	handler, mockService := newTestHandler()

	rr := postQuery(t, handler, `{"query": "   "}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please provide a query")

	mockService.AssertNotCalled(t, "ProcessRequest")
}

func TestQueryHandler_MalformedBody(t *testing.T) {
	handler, mockService := newTestHandler()

	rr := postQuery(t, handler, `{"query":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	mockService.AssertNotCalled(t, "ProcessRequest")
}

func TestQueryHandler_UnexpectedErrorIs500(t *testing.T) {
	handler, mockService := newTestHandler()
	mockService.On("ProcessRequest", mock.Anything, "weather in Paris").
		Return("", errors.New("boom")).Once()

	rr := postQuery(t, handler, `{"query": "weather in Paris"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHealthHandler(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.Health(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rr.Body.String())
}
