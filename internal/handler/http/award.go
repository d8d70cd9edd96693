package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/award"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type AwardHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ByYear(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type awardHandlerImpl struct {
	awardService award.AwardService
}

func NewAwardHandler(awardService award.AwardService) AwardHandler {
	return &awardHandlerImpl{
		awardService: awardService,
	}
}

// List implements AwardHandler.
func (h *awardHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := award.AwardFilter{
		Params:   listing.FromRequest(r),
		Category: queryString(r, "category"),
		Year:     queryIntPtr(r, "year"),
		IsActive: queryBool(r, "is_active"),
	}

	results, err := h.awardService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Awards, results.Meta)
}

// Get implements AwardHandler.
func (h *awardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.awardService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ByYear implements AwardHandler.
func (h *awardHandlerImpl) ByYear(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}

	results, err := h.awardService.ByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Stats implements AwardHandler.
func (h *awardHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.awardService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Create implements AwardHandler.
func (h *awardHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req award.CreateAwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAward decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.awardService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateAward service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Award created successfully", created)
}

// Update implements AwardHandler.
func (h *awardHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req award.UpdateAwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAward decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.awardService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateAward service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Award updated successfully", updated)
}

// Delete implements AwardHandler.
func (h *awardHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.awardService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Award deleted successfully", nil)
}
