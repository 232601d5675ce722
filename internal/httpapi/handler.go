// Package httpapi exposes the dashboard session as a JSON API.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chrisdamba/foodpredict/internal/export"
	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/metrics"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/chrisdamba/foodpredict/internal/notification"
	"github.com/chrisdamba/foodpredict/internal/simulator"
	"github.com/chrisdamba/foodpredict/internal/validation"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	sim     *simulator.Simulator
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewHandler(sim *simulator.Simulator, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		sim:     sim,
		metrics: m,
		logger:  logger.OrNop(log).With("component", "httpapi"),
	}
}

// NewRouter mounts the API, health and metrics endpoints.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.NoCache)

	r.Get("/healthz", h.Health)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler())
	}
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Get("/restaurants", h.ListRestaurants)
		r.Get("/predictions", h.ListPredictions)
		r.Get("/comparison", h.GetComparison)
		r.Post("/refresh", h.Refresh)

		r.Route("/validation", func(r chi.Router) {
			r.Get("/", h.GetValidation)
			r.Put("/thresholds", h.UpdateThresholds)
			r.Post("/select-all", h.SelectAll)
			r.Post("/only-normal", h.OnlyNormal)
			r.Post("/{id}/toggle", h.ToggleValidation)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/preview", h.PreviewNotification)
			r.Post("/deploy", h.DeployNotification)
			r.Get("/{deploymentID}", h.GetDeployment)
			r.Delete("/{deploymentID}", h.CancelDeployment)
		})

		r.Get("/export/{file}", h.ExportFile)
	})
}

func (h *Handler) log(r *http.Request) *logger.Logger {
	return h.logger.With("request_id", chimw.GetReqID(r.Context()))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

type summaryResponse struct {
	simulator.Summary
	PotentialLoss int       `json:"potential_loss"`
	LastUpdated   time.Time `json:"last_updated"`
	IsRefreshing  bool      `json:"is_refreshing"`
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	snap := h.sim.Snapshot()
	sum := simulator.Summarize(snap.Predictions)
	respond(w, http.StatusOK, summaryResponse{
		Summary:       sum,
		PotentialLoss: sum.PotentialLoss(),
		LastUpdated:   snap.UpdatedAt,
		IsRefreshing:  h.sim.IsRefreshing(),
	})
}

func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"restaurants": h.sim.Restaurants,
	})
}

type predictionsResponse struct {
	Predictions []models.Prediction `json:"predictions"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	snap := h.sim.Snapshot()
	respond(w, http.StatusOK, predictionsResponse{Predictions: snap.Predictions, UpdatedAt: snap.UpdatedAt})
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	limit := simulator.DefaultComparisonLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"comparison": h.sim.Comparison(limit),
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.sim.Refresh(r.Context())
	switch {
	case errors.Is(err, simulator.ErrRefreshInProgress):
		respondError(w, http.StatusConflict, "Refresh already in progress")
		return
	case err != nil:
		h.log(r).Error("refresh failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Could not refresh predictions")
		return
	}
	h.GetSummary(w, r)
}

func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.sim.Validator.State(r.URL.Query().Get("q")))
}

func (h *Handler) UpdateThresholds(w http.ResponseWriter, r *http.Request) {
	var t validation.Thresholds
	if err := decode(w, r, &t); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.sim.UpdateThresholds(t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusOK, h.sim.Validator.State(""))
}

func (h *Handler) ToggleValidation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	on, err := h.sim.ToggleValidation(id)
	switch {
	case errors.Is(err, validation.ErrUnknownRestaurant):
		respondError(w, http.StatusNotFound, "Restaurant not found")
		return
	case errors.Is(err, validation.ErrNotUnusual):
		respondError(w, http.StatusConflict, "Restaurant is within thresholds")
		return
	case err != nil:
		h.log(r).Error("cannot toggle validation", "restaurant_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Could not toggle validation")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"restaurant_id": id,
		"validated":     on,
	})
}

func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.sim.SelectAll(q)
	respond(w, http.StatusOK, h.sim.Validator.State(q))
}

func (h *Handler) OnlyNormal(w http.ResponseWriter, r *http.Request) {
	h.sim.SelectOnlyNormal()
	respond(w, http.StatusOK, h.sim.Validator.State(""))
}

type notificationRequest struct {
	Template     string `json:"template"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

func (h *Handler) template(req notificationRequest) string {
	if req.Template == "" {
		return h.sim.Config.Notification.Template
	}
	return req.Template
}

func (h *Handler) PreviewNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	msg, err := h.sim.Preview(h.template(req), req.RestaurantID)
	if err != nil {
		h.notificationError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"restaurant_id": req.RestaurantID,
		"message":       msg,
	})
}

type deploymentResponse struct {
	ID         string                `json:"id"`
	StartedAt  time.Time             `json:"started_at"`
	Recipients []string              `json:"recipients"`
	Outcomes   notification.Outcomes `json:"outcomes"`
	Summary    notification.Summary  `json:"summary"`
	Message    string                `json:"message,omitempty"`
}

func newDeploymentResponse(dep *notification.Deployment) deploymentResponse {
	sum := dep.Summary()
	resp := deploymentResponse{
		ID:         dep.ID,
		StartedAt:  dep.StartedAt,
		Recipients: dep.Recipients(),
		Outcomes:   dep.Outcomes(),
		Summary:    sum,
	}
	if sum.Done {
		resp.Message = sum.Message()
	}
	return resp
}

func (h *Handler) DeployNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	dep, err := h.sim.Deploy(h.template(req))
	if err != nil {
		h.notificationError(w, r, err)
		return
	}
	respond(w, http.StatusAccepted, newDeploymentResponse(dep))
}

func (h *Handler) GetDeployment(w http.ResponseWriter, r *http.Request) {
	dep, err := h.sim.Deployment(chi.URLParam(r, "deploymentID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Deployment not found")
		return
	}
	respond(w, http.StatusOK, newDeploymentResponse(dep))
}

func (h *Handler) CancelDeployment(w http.ResponseWriter, r *http.Request) {
	dep, err := h.sim.Deployment(chi.URLParam(r, "deploymentID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Deployment not found")
		return
	}
	if !dep.Cancel() {
		respondError(w, http.StatusConflict, "Deployment already finished")
		return
	}
	h.log(r).Info("deployment cancelled", "deployment_id", dep.ID)
	respond(w, http.StatusOK, newDeploymentResponse(dep))
}

func (h *Handler) notificationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, notification.ErrMissingPlaceholder),
		errors.Is(err, notification.ErrUnknownPlaceholder):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, validation.ErrUnknownRestaurant):
		respondError(w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, notification.ErrNoRecipients):
		respondError(w, http.StatusConflict, "No validated restaurants")
	case errors.Is(err, notification.ErrNoPrediction):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log(r).Error("notification request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Could not process notification")
	}
}

// ExportFile streams one dataset named <dataset>.<format>.
func (h *Handler) ExportFile(w http.ResponseWriter, r *http.Request) {
	name, ext, ok := strings.Cut(chi.URLParam(r, "file"), ".")
	if !ok {
		respondError(w, http.StatusBadRequest, "Expected <dataset>.<format>")
		return
	}
	dataset, err := export.ParseDataset(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	format, err := export.ParseFormat(ext)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := export.Build(h.sim.ExportSource(), dataset, format, h.sim.Now())
	switch {
	case errors.Is(err, export.ErrEmptyDataset):
		respondError(w, http.StatusNotFound, "No data available to export")
		return
	case err != nil:
		h.log(r).Error("export failed", "dataset", dataset, "format", format, "error", err)
		respondError(w, http.StatusInternalServerError, "Could not export dataset")
		return
	}
	h.metrics.RecordExport(string(dataset), string(format), len(f.Data))

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}
