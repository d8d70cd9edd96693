package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/email"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type ContactServiceImpl struct {
	tx database.Transactor
	contact.ContactRepository
	user.UserRepository
	cache  *cache.Cache
	mailer email.EmailService
}

// NewContactService wires the contact inbox. mailer may be nil, in which
// case submissions are stored without sending mail.
func NewContactService(
	tx database.Transactor,
	contactRepo contact.ContactRepository,
	userRepo user.UserRepository,
	dashboardCache *cache.Cache,
	mailer email.EmailService,
) contact.ContactService {
	return &ContactServiceImpl{
		tx:                tx,
		ContactRepository: contactRepo,
		UserRepository:    userRepo,
		cache:             dashboardCache,
		mailer:            mailer,
	}
}

func (s *ContactServiceImpl) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, "dashboard:*")
}

// Create implements contact.ContactService.
func (s *ContactServiceImpl) Create(ctx context.Context, req contact.CreateContactRequest) (contact.Contact, error) {
	if err := req.Validate(); err != nil {
		return contact.Contact{}, err
	}

	newContact := contact.Contact{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Subject:  req.Subject,
		Message:  req.Message,
		Service:  req.Service,
		Budget:   req.Budget,
		Timeline: req.Timeline,
		Status:   contact.StatusNew,
		Priority: contact.PriorityMedium,
		Source:   contact.SourceWebsite,
	}
	if req.Source != nil {
		newContact.Source = contact.Source(*req.Source)
	}
	if req.IPAddress != "" {
		newContact.IPAddress = &req.IPAddress
	}
	if req.UserAgent != "" {
		newContact.UserAgent = &req.UserAgent
	}

	created, err := s.ContactRepository.Create(ctx, newContact)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}
	s.invalidate(ctx)

	slog.Info("Contact received", "contact_id", created.ID, "subject", created.Subject)
	if s.mailer != nil {
		go s.sendMail(created)
	}
	return created, nil
}

func (s *ContactServiceImpl) sendMail(c contact.Contact) {
	msg := email.ContactMessage{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      deref(c.Phone),
		Company:    deref(c.Company),
		Subject:    c.Subject,
		Message:    c.Message,
		Service:    deref(c.Service),
		Budget:     deref(c.Budget),
		Timeline:   deref(c.Timeline),
		ReceivedAt: c.CreatedAt,
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	if err := s.mailer.SendContactNotification(msg); err != nil {
		slog.Error("Contact notification failed", "contact_id", c.ID, "error", err)
	}
	if err := s.mailer.SendContactAcknowledgement(msg); err != nil {
		slog.Error("Contact acknowledgement failed", "contact_id", c.ID, "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Get implements contact.ContactService.
func (s *ContactServiceImpl) Get(ctx context.Context, id string) (contact.Contact, error) {
	found, err := s.ContactRepository.GetByID(ctx, id)
	if err != nil {
		return contact.Contact{}, err
	}
	found.Notes, err = s.ContactRepository.ListNotes(ctx, id)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("failed to list contact notes: %w", err)
	}
	return found, nil
}

// Update implements contact.ContactService.
func (s *ContactServiceImpl) Update(ctx context.Context, id string, req contact.UpdateContactRequest) (contact.Contact, error) {
	if err := req.Validate(); err != nil {
		return contact.Contact{}, err
	}
	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return contact.Contact{}, err
		}
	}

	if _, err := s.ContactRepository.Update(ctx, id, req); err != nil {
		return contact.Contact{}, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete implements contact.ContactService.
func (s *ContactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.ContactRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// List implements contact.ContactService.
func (s *ContactServiceImpl) List(ctx context.Context, filter contact.ContactFilter) (contact.ListContactResponse, error) {
	if err := filter.Validate(); err != nil {
		return contact.ListContactResponse{}, err
	}

	contacts, total, err := s.ContactRepository.List(ctx, filter)
	if err != nil {
		return contact.ListContactResponse{}, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contact.ListContactResponse{
		Contacts: contacts,
		Meta:     listing.BuildMeta(total, filter.Params),
	}, nil
}

// AddNote implements contact.ContactService.
func (s *ContactServiceImpl) AddNote(ctx context.Context, id, authorID string, req contact.AddNoteRequest) (contact.Contact, error) {
	if err := req.Validate(); err != nil {
		return contact.Contact{}, err
	}

	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ContactRepository.GetByID(txCtx, id); err != nil {
			return err
		}
		_, err := s.ContactRepository.AddNote(txCtx, id, req.Note, authorID)
		return err
	})
	if err != nil {
		return contact.Contact{}, err
	}
	return s.Get(ctx, id)
}

// Assign implements contact.ContactService.
func (s *ContactServiceImpl) Assign(ctx context.Context, id, userID string) (contact.Contact, error) {
	if !validator.IsValidUUID(userID) {
		return contact.Contact{}, validator.ValidationErrors{{Field: "user_id", Message: "user_id must be a valid UUID"}}
	}
	if err := s.checkAssignee(ctx, userID); err != nil {
		return contact.Contact{}, err
	}

	if err := s.ContactRepository.Assign(ctx, id, userID); err != nil {
		return contact.Contact{}, err
	}
	return s.Get(ctx, id)
}

func (s *ContactServiceImpl) checkAssignee(ctx context.Context, userID string) error {
	assignee, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return contact.ErrAssigneeNotFound
		}
		return err
	}
	if !assignee.IsAdmin() {
		return contact.ErrAssigneeNotAdmin
	}
	return nil
}

// Stats implements contact.ContactService.
func (s *ContactServiceImpl) Stats(ctx context.Context) (contact.ContactStats, error) {
	byStatus, err := s.ContactRepository.CountBy(ctx, "status")
	if err != nil {
		return contact.ContactStats{}, fmt.Errorf("failed to count contacts by status: %w", err)
	}
	byPriority, err := s.ContactRepository.CountBy(ctx, "priority")
	if err != nil {
		return contact.ContactStats{}, fmt.Errorf("failed to count contacts by priority: %w", err)
	}

	stats := contact.ContactStats{ByStatus: byStatus, ByPriority: byPriority}
	for _, c := range byStatus {
		stats.Total += c.Count
		if c.Key == string(contact.StatusNew) {
			stats.New = c.Count
		}
	}
	return stats, nil
}
