package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/feature"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type FeatureHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type featureHandlerImpl struct {
	featureService feature.FeatureService
}

func NewFeatureHandler(featureService feature.FeatureService) FeatureHandler {
	return &featureHandlerImpl{
		featureService: featureService,
	}
}

// List implements FeatureHandler.
func (h *featureHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := feature.FeatureFilter{
		Params:   listing.FromRequest(r),
		Category: queryString(r, "category"),
		IsActive: queryBool(r, "is_active"),
	}

	results, err := h.featureService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Features, results.Meta)
}

// Get implements FeatureHandler.
func (h *featureHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.featureService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Active implements FeatureHandler.
func (h *featureHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	results, err := h.featureService.Active(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Create implements FeatureHandler.
func (h *featureHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req feature.CreateFeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateFeature decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.featureService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateFeature service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Feature created successfully", created)
}

// Update implements FeatureHandler.
func (h *featureHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req feature.UpdateFeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateFeature decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.featureService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateFeature service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Feature updated successfully", updated)
}

// Delete implements FeatureHandler.
func (h *featureHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.featureService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Feature deleted successfully", nil)
}
