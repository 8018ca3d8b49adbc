package handler

import (
	"net/http"

	"dwellio/internal/lookups/service"
	httputil "dwellio/pkg/http"
	"dwellio/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type LookupsHandler struct {
	service service.LookupsService
	log     *logger.Logger
}

func NewLookupsHandler(service service.LookupsService, log *logger.Logger) *LookupsHandler {
	return &LookupsHandler{
		service: service,
		log:     log,
	}
}

func (h *LookupsHandler) PropertyTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.PropertyTypes()); err != nil {
		h.log.Error("failed to write success response", "handler", "PropertyTypes", "error", err)
	}
}

func (h *LookupsHandler) PriceRanges(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.PriceRanges()); err != nil {
		h.log.Error("failed to write success response", "handler", "PriceRanges", "error", err)
	}
}

func (h *LookupsHandler) Bedrooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.BedroomOptions()); err != nil {
		h.log.Error("failed to write success response", "handler", "Bedrooms", "error", err)
	}
}

func (h *LookupsHandler) Cities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cities", "error", writeErr)
		}
		return
	}
	if cities == nil {
		cities = []string{}
	}

	if err := httputil.WriteSuccess(w, cities); err != nil {
		h.log.Error("failed to write success response", "handler", "Cities", "error", err)
	}
}

func (h *LookupsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/property-types", h.PropertyTypes)
	router.GET("/api/price-ranges", h.PriceRanges)
	router.GET("/api/bedrooms", h.Bedrooms)
	router.GET("/api/locations", h.Cities)
}
