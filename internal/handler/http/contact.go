package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/middleware"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

type ContactHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddNote(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type contactHandlerImpl struct {
	contactService contact.ContactService
}

func NewContactHandler(contactService contact.ContactService) ContactHandler {
	return &contactHandlerImpl{
		contactService: contactService,
	}
}

// Create implements ContactHandler.
func (h *contactHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contact.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateContact decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IPAddress = clientIP(r)
	req.UserAgent = r.UserAgent()

	created, err := h.contactService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateContact service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Thank you for contacting us. We will get back to you soon.", created)
}

// List implements ContactHandler.
func (h *contactHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := contact.ContactFilter{
		Params:     listing.FromRequest(r),
		Status:     queryString(r, "status"),
		Priority:   queryString(r, "priority"),
		Service:    queryString(r, "service"),
		AssignedTo: queryString(r, "assigned_to"),
	}

	results, err := h.contactService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Contacts, results.Meta)
}

// Get implements ContactHandler.
func (h *contactHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements ContactHandler.
func (h *contactHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req contact.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateContact decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.contactService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateContact service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contact updated successfully", updated)
}

// Delete implements ContactHandler.
func (h *contactHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contact deleted successfully", nil)
}

// AddNote implements ContactHandler.
func (h *contactHandlerImpl) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req contact.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.contactService.AddNote(r.Context(), id, middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("AddNote service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Note added successfully", updated)
}

// Assign implements ContactHandler.
func (h *contactHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	updated, err := h.contactService.Assign(r.Context(), id, userID)
	if err != nil {
		slog.Error("AssignContact service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contact assigned successfully", updated)
}

// Stats implements ContactHandler.
func (h *contactHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contactService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
