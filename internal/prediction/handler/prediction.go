package handler

import (
	"encoding/json"
	"net/http"

	"dwellio/internal/prediction/service"
	httputil "dwellio/pkg/http"
	"dwellio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type predictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

type PredictionHandler struct {
	service service.PredictionService
	log     *logger.Logger
}

func NewPredictionHandler(service service.PredictionService, log *logger.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		log:     log,
	}
}

func (h *PredictionHandler) PredictPrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "PredictPrice", "error", writeErr)
		}
		return
	}

	price, err := h.service.PredictPrice(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "PredictPrice", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, predictResponse{PredictedPrice: price}); err != nil {
		h.log.Error("failed to write success response", "handler", "PredictPrice", "error", err)
	}
}

func (h *PredictionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/predict/predict-price", h.PredictPrice)
}
