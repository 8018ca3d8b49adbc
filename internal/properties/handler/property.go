package handler

import (
	"encoding/json"
	"net/http"

	"dwellio/internal/properties/service"
	apperrors "dwellio/pkg/errors"
	httputil "dwellio/pkg/http"
	"dwellio/pkg/logger"
	"dwellio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

var filterKeys = []string{"propertyType", "location", "city", "bedrooms", "priceRange", "searchTerm", "sortBy"}

type listResponse struct {
	Properties  []*model.Property `json:"properties"`
	TotalCount  int64             `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

type PropertyHandler struct {
	service service.PropertyService
	log     *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log,
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	query := r.URL.Query()
	filters := make(map[string]string, len(filterKeys))
	for _, key := range filterKeys {
		if value := query.Get(key); value != "" {
			filters[key] = value
		}
	}

	properties, total, err := h.service.List(r.Context(), filters, page, limit)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	if err := httputil.WriteJSON(w, http.StatusOK, listResponse{
		Properties:  properties,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "List", "error", err)
	}
}

// GetByID also serves /api/properties/featured: httprouter cannot mix a
// static segment with the :id wildcard, so "featured" is dispatched
// here.
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if id == "featured" {
		h.getFeatured(w, r)
		return
	}

	property, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PropertyHandler) getFeatured(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.GetFeatured(r.Context())
	if err != nil {
		h.writeError(w, "GetFeatured", err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}

	if err := httputil.WriteSuccess(w, properties); err != nil {
		h.log.Error("failed to write success response", "handler", "GetFeatured", "error", err)
	}
}

// Subresource routes /api/properties/:id/similar and the location
// search at /api/properties/locations/search, which share the two-
// segment wildcard route.
func (h *PropertyHandler) Subresource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	action := ps.ByName("action")

	switch {
	case id == "locations" && action == "search":
		h.searchLocations(w, r)
	case action == "similar":
		h.getSimilar(w, r, id)
	default:
		h.writeError(w, "Subresource", apperrors.NotFound("Resource"))
	}
}

func (h *PropertyHandler) getSimilar(w http.ResponseWriter, r *http.Request, id string) {
	properties, err := h.service.GetSimilar(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetSimilar", err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}

	if err := httputil.WriteSuccess(w, properties); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSimilar", "error", err)
	}
}

func (h *PropertyHandler) searchLocations(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.SearchLocations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, "SearchLocations", err)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	if err := httputil.WriteSuccess(w, cities); err != nil {
		h.log.Error("failed to write success response", "handler", "SearchLocations", "error", err)
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &property); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, property); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	property, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PropertyHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/properties", h.List)
	router.POST("/api/properties", h.Create)
	router.GET("/api/properties/:id", h.GetByID)
	router.GET("/api/properties/:id/:action", h.Subresource)
	router.PUT("/api/properties/:id", h.Update)
	router.DELETE("/api/properties/:id", h.Delete)
}
