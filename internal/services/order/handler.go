package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// CreateOrder handles POST /orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := requestIDFrom(r)

	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"restaurant_id": req.RestaurantID,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.CreateOrder(ctx, &req, requestID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "not available") ||
			strings.Contains(err.Error(), "not accepting") {
			h.writeErrorResponse(w, http.StatusUnprocessableEntity, err.Error(), requestID)
			return
		}
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"restaurant_id": req.RestaurantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Info("order_created", "Order created successfully", requestID, map[string]interface{}{
		"order_number": response.OrderNumber,
		"total_amount": response.TotalAmount,
	})

	h.writeJSON(w, http.StatusCreated, response)
}

// GetMenu handles GET /restaurants/:id/menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := requestIDFrom(r)
	restaurantID := ps.ByName("id")

	menu, err := h.service.GetMenu(r.Context(), restaurantID, requestID)
	if err != nil {
		h.logger.Error("menu_load_failed", "Failed to load menu", requestID, err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if menu == nil {
		menu = []models.MenuItem{}
	}
	h.writeJSON(w, http.StatusOK, menu)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
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

	router.POST("/orders", h.withLogging(h.CreateOrder))
	router.GET("/restaurants/:id/menu", h.withLogging(h.GetMenu))
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

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return logger.GenerateRequestID()
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r, ps)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
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
