package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type ProductHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Featured(w http.ResponseWriter, r *http.Request)
	ByCategory(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type productHandlerImpl struct {
	productService product.ProductService
}

func NewProductHandler(productService product.ProductService) ProductHandler {
	return &productHandlerImpl{
		productService: productService,
	}
}

// List implements ProductHandler.
func (h *productHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := product.ProductFilter{
		Params:     listing.FromRequest(r),
		Category:   queryString(r, "category"),
		Status:     queryString(r, "status"),
		Price:      queryString(r, "price"),
		IsFeatured: queryBool(r, "is_featured"),
		IsActive:   queryBool(r, "is_active"),
	}

	results, err := h.productService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Products, results.Meta)
}

// Get implements ProductHandler.
func (h *productHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.productService.Get(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Featured implements ProductHandler.
func (h *productHandlerImpl) Featured(w http.ResponseWriter, r *http.Request) {
	results, err := h.productService.Featured(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ByCategory implements ProductHandler.
func (h *productHandlerImpl) ByCategory(w http.ResponseWriter, r *http.Request) {
	results, err := h.productService.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Stats implements ProductHandler.
func (h *productHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.productService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Create implements ProductHandler.
func (h *productHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProduct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.productService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateProduct service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product created successfully", created)
}

// Update implements ProductHandler.
func (h *productHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req product.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProduct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.productService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateProduct service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product updated successfully", updated)
}

// Delete implements ProductHandler.
func (h *productHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product deleted successfully", nil)
}
