package assistant

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-concierge/internal/api"
	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

type Handler struct {
	assistantService Service
	logger           *slog.Logger
}

func NewHandler(assistantService Service, logger *slog.Logger) *Handler {
	return &Handler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// Query handles one assistant request.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssistantHandler").Start(r.Context(), "Query", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/query"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Query"))
	l.DebugContext(ctx, "Assistant query handler invoked")

	var req models.QueryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		l.ErrorContext(ctx, "Empty query")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please provide a query")
		return
	}

	response, err := h.assistantService.ProcessRequest(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to process query", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	l.InfoContext(ctx, "Assistant query processed")
	api.WriteJSONResponse(w, r, http.StatusOK, models.QueryResponse{
		Success:  true,
		Response: response,
	})
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}
