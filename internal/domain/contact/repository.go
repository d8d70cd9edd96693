package contact

import "context"

type ContactRepository interface {
	Create(ctx context.Context, c Contact) (Contact, error)
	GetByID(ctx context.Context, id string) (Contact, error)
	Update(ctx context.Context, id string, req UpdateContactRequest) (Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ContactFilter) ([]Contact, int64, error)
	AddNote(ctx context.Context, contactID, note, addedBy string) (Note, error)
	ListNotes(ctx context.Context, contactID string) ([]Note, error)
	Assign(ctx context.Context, id, userID string) error
	CountBy(ctx context.Context, column string) ([]CountBy, error)
	Recent(ctx context.Context, limit int) ([]Contact, error)
}
