package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
)

// Handler handles HTTP requests for the tracking service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new tracking handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetOrderStatus handles GET /orders/:number/status requests
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()
	orderNumber := ps.ByName("number")

	status, err := h.service.GetOrderStatus(r.Context(), orderNumber, requestID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get order status", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, status)
}

// GetOrderHistory handles GET /orders/:number/history requests
func (h *Handler) GetOrderHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()
	orderNumber := ps.ByName("number")

	history, err := h.service.GetOrderHistory(r.Context(), orderNumber, requestID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get order history", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, history)
}

// GetPropertyEarnings handles GET /properties/:id/earnings requests
func (h *Handler) GetPropertyEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()
	propertyID := ps.ByName("id")

	earnings, err := h.service.GetPropertyEarnings(r.Context(), propertyID, requestID)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Property not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get property earnings", requestID, err, map[string]interface{}{
			"property_id": propertyID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, earnings)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	healthy := h.service.HealthCheck(r.Context())

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "tracking-service",
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

	router.GET("/orders/:number/status", h.withLogging(h.GetOrderStatus))
	router.GET("/orders/:number/history", h.withLogging(h.GetOrderHistory))
	router.GET("/properties/:id/earnings", h.withLogging(h.GetPropertyEarnings))
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

		next(w, r, ps)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}
