package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"medstock/m/domain"
	"medstock/m/internal/socket"
	"medstock/m/internal/store"
)

// Settings are the HTTP-facing knobs taken from config.
type Settings struct {
	Secret         string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	hub      *socket.Hub
	logger   *zap.Logger
	settings Settings
}

// New constructs a Handler.
func New(st *store.Store, hub *socket.Hub, logger *zap.Logger, settings Settings) *Handler {
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = 24 * time.Hour
	}
	return &Handler{store: st, hub: hub, logger: logger, settings: settings}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.settings.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.health)
	r.Get("/ws", h.serveWs)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/logout", h.logout)
			protected.Get("/me", h.me)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/medicines", func(r chi.Router) {
			r.Get("/", h.listMedicines)
			r.Post("/", h.addMedicine)
			r.Get("/categories", h.listCategories)
			r.Get("/{id}", h.getMedicine)
			r.Put("/{id}", h.updateMedicine)
		})

		pr.Get("/expiry", h.expiryReport)

		pr.Route("/requests", func(r chi.Router) {
			r.Get("/", h.listRequests)
			r.Post("/", h.submitRequest)
			r.Post("/{id}/approve", h.approveRequest)
			r.Post("/{id}/reject", h.rejectRequest)
			r.Post("/{id}/dispense", h.dispenseRequest)
		})

		pr.Route("/usage", func(r chi.Router) {
			r.Get("/", h.listUsage)
			r.Post("/", h.recordUsage)
		})

		pr.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.listAlerts)
			r.Delete("/{id}", h.dismissAlert)
		})

		pr.Route("/reports", func(r chi.Router) {
			r.Get("/analytics", h.analyticsReport)
			r.Get("/analytics/export", h.exportAnalytics)
			r.Get("/dashboard", h.dashboard)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}

// respondStoreError maps store error kinds to status codes.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("unexpected store error",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// publishAlerts pushes the current alert set to every websocket client.
func (h *Handler) publishAlerts() {
	if h.hub == nil || h.hub.Len() == 0 {
		return
	}
	payload, err := json.Marshal(alertsMessage{Type: "alerts", Alerts: h.store.Alerts()})
	if err != nil {
		h.logger.Error("unable to encode alerts", zap.Error(err))
		return
	}
	h.hub.Broadcast(payload)
}

type alertsMessage struct {
	Type   string         `json:"type"`
	Alerts []domain.Alert `json:"alerts"`
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// decodeOptionalJSON is decodeJSON that accepts an empty body.
func decodeOptionalJSON(r *http.Request, dest interface{}) error {
	if err := decodeJSON(r, dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
