package handler

import (
	"encoding/json"
	"net/http"

	"dwellio/internal/newsletter/service"
	httputil "dwellio/pkg/http"
	"dwellio/pkg/logger"
	"dwellio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type subscribeRequest struct {
	Email       string             `json:"email"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

type NewsletterHandler struct {
	service service.NewsletterService
	log     *logger.Logger
}

func NewNewsletterHandler(service service.NewsletterService, log *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log,
	}
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Subscribe", "error", writeErr)
		}
		return
	}

	sub, created, err := h.service.Subscribe(r.Context(), req.Email, req.Preferences)
	if err != nil {
		h.writeError(w, "Subscribe", err)
		return
	}

	if created {
		if err := httputil.WriteCreated(w, sub); err != nil {
			h.log.Error("failed to write created response", "handler", "Subscribe", "error", err)
		}
		return
	}
	if err := httputil.WriteSuccess(w, sub); err != nil {
		h.log.Error("failed to write success response", "handler", "Subscribe", "error", err)
	}
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Unsubscribe", "error", writeErr)
		}
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		h.writeError(w, "Unsubscribe", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"message": "Successfully unsubscribed"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Unsubscribe", "error", err)
	}
}

func (h *NewsletterHandler) ListSubscribers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "ListSubscribers", err)
		return
	}

	query := r.URL.Query()
	result, err := h.service.ListSubscribers(r.Context(), query.Get("status"), query.Get("search"), page, limit)
	if err != nil {
		h.writeError(w, "ListSubscribers", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSubscribers", "error", err)
	}
}

func (h *NewsletterHandler) UpdateSubscriber(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update service.SubscriberUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateSubscriber", "error", writeErr)
		}
		return
	}

	sub, err := h.service.UpdateSubscriber(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateSubscriber", err)
		return
	}

	if err := httputil.WriteSuccess(w, sub); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateSubscriber", "error", err)
	}
}

func (h *NewsletterHandler) DeleteSubscriber(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteSubscriber(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DeleteSubscriber", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NewsletterHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *NewsletterHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/newsletter/subscribe", h.Subscribe)
	router.POST("/api/newsletter/unsubscribe", h.Unsubscribe)
	router.GET("/api/newsletter/subscribers", h.ListSubscribers)
	router.PUT("/api/newsletter/subscribers/:id", h.UpdateSubscriber)
	router.DELETE("/api/newsletter/subscribers/:id", h.DeleteSubscriber)
}
