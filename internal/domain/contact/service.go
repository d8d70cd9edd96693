package contact

import "context"

type ContactService interface {
	Create(ctx context.Context, req CreateContactRequest) (Contact, error)
	Get(ctx context.Context, id string) (Contact, error)
	Update(ctx context.Context, id string, req UpdateContactRequest) (Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ContactFilter) (ListContactResponse, error)
	AddNote(ctx context.Context, id, authorID string, req AddNoteRequest) (Contact, error)
	Assign(ctx context.Context, id, userID string) (Contact, error)
	Stats(ctx context.Context) (ContactStats, error)
}
