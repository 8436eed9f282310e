package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
	"github.com/Shashikant-75555/swaadserve-demo/internal/status"
)

// Handler handles HTTP requests for the dashboard service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ListOrders handles GET /restaurants/:id/orders requests
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()
	restaurantID := ps.ByName("id")

	var statusFilter *models.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := status.ParseStatus(raw)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
			return
		}
		statusFilter = &parsed
	}

	orders, err := h.service.ListOrders(r.Context(), restaurantID, statusFilter, requestID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list orders", requestID, err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// UpdateStatusRequest is the body of a status transition request
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	Role      string `json:"role"`
	ChangedBy string `json:"changed_by"`
}

// UpdateStatus handles POST /orders/:number/status requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()
	orderNumber := ps.ByName("number")

	var req UpdateStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	target, err := status.ParseStatus(req.Status)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	role, err := status.ParseRole(req.Role)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = req.Role
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := h.service.UpdateStatus(ctx, orderNumber, target, role, changedBy, requestID)
	if err != nil {
		h.writeUpdateError(w, err, orderNumber, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_number":      order.Number,
		"status":            order.Status,
		"updated_at":        order.UpdatedAt,
		"available_actions": status.NextStatuses(order.Status),
	})
}

// writeUpdateError maps transition failures to HTTP status codes
func (h *Handler) writeUpdateError(w http.ResponseWriter, err error, orderNumber, requestID string) {
	var invalid *status.InvalidTransitionError
	var roleErr *status.RoleError

	switch {
	case errors.Is(err, ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
	case errors.Is(err, ErrTransitionInFlight):
		h.writeErrorResponse(w, http.StatusConflict, err.Error(), requestID)
	case errors.As(err, &invalid):
		h.writeErrorResponse(w, http.StatusConflict, invalid.Error(), requestID)
	case errors.As(err, &roleErr):
		h.writeErrorResponse(w, http.StatusForbidden, roleErr.Error(), requestID)
	default:
		h.logger.Error("status_update_failed", "Failed to update order status", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "dashboard-service",
		"healthy":   healthy,
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, code, response)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() http.Handler {
	router := httprouter.New()

	router.GET("/restaurants/:id/orders", h.withLogging(h.ListOrders))
	router.POST("/orders/:number/status", h.withLogging(h.UpdateStatus))
	router.GET("/health", h.withLogging(h.HealthCheck))

	return router
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r, ps)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
