package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/testimonial"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type TestimonialHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Featured(w http.ResponseWriter, r *http.Request)
	ByRating(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type testimonialHandlerImpl struct {
	testimonialService testimonial.TestimonialService
}

func NewTestimonialHandler(testimonialService testimonial.TestimonialService) TestimonialHandler {
	return &testimonialHandlerImpl{
		testimonialService: testimonialService,
	}
}

// List implements TestimonialHandler.
func (h *testimonialHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := testimonial.TestimonialFilter{
		Params:     listing.FromRequest(r),
		Service:    queryString(r, "service"),
		ProjectID:  queryString(r, "project_id"),
		IsVerified: queryBool(r, "is_verified"),
		IsFeatured: queryBool(r, "is_featured"),
		IsActive:   queryBool(r, "is_active"),
		MinRating:  queryIntPtr(r, "min_rating"),
	}

	results, err := h.testimonialService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Testimonials, results.Meta)
}

// Get implements TestimonialHandler.
func (h *testimonialHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.testimonialService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Featured implements TestimonialHandler.
func (h *testimonialHandlerImpl) Featured(w http.ResponseWriter, r *http.Request) {
	results, err := h.testimonialService.Featured(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ByRating implements TestimonialHandler.
func (h *testimonialHandlerImpl) ByRating(w http.ResponseWriter, r *http.Request) {
	rating, ok := pathInt(w, r, "rating")
	if !ok {
		return
	}

	results, err := h.testimonialService.ByRating(r.Context(), rating)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Stats implements TestimonialHandler.
func (h *testimonialHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.testimonialService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Create implements TestimonialHandler.
func (h *testimonialHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req testimonial.CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTestimonial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.testimonialService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateTestimonial service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Testimonial created successfully", created)
}

// Update implements TestimonialHandler.
func (h *testimonialHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req testimonial.UpdateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTestimonial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.testimonialService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateTestimonial service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Testimonial updated successfully", updated)
}

// Delete implements TestimonialHandler.
func (h *testimonialHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.testimonialService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Testimonial deleted successfully", nil)
}
