package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/technology"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type TechnologyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Featured(w http.ResponseWriter, r *http.Request)
	ByCategory(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type technologyHandlerImpl struct {
	technologyService technology.TechnologyService
}

func NewTechnologyHandler(technologyService technology.TechnologyService) TechnologyHandler {
	return &technologyHandlerImpl{
		technologyService: technologyService,
	}
}

// List implements TechnologyHandler.
func (h *technologyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := technology.TechnologyFilter{
		Params:           listing.FromRequest(r),
		Category:         queryString(r, "category"),
		Type:             queryString(r, "type"),
		ProficiencyLevel: queryString(r, "proficiency_level"),
		IsFeatured:       queryBool(r, "is_featured"),
		IsActive:         queryBool(r, "is_active"),
	}

	results, err := h.technologyService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Technologies, results.Meta)
}

// Get implements TechnologyHandler.
func (h *technologyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.technologyService.Get(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Featured implements TechnologyHandler.
func (h *technologyHandlerImpl) Featured(w http.ResponseWriter, r *http.Request) {
	results, err := h.technologyService.Featured(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ByCategory implements TechnologyHandler.
func (h *technologyHandlerImpl) ByCategory(w http.ResponseWriter, r *http.Request) {
	results, err := h.technologyService.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Create implements TechnologyHandler.
func (h *technologyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req technology.CreateTechnologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTechnology decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.technologyService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateTechnology service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Technology created successfully", created)
}

// Update implements TechnologyHandler.
func (h *technologyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req technology.UpdateTechnologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTechnology decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.technologyService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateTechnology service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Technology updated successfully", updated)
}

// Delete implements TechnologyHandler.
func (h *technologyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.technologyService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Technology deleted successfully", nil)
}
