package testimonial

import "context"

type TestimonialRepository interface {
	Create(ctx context.Context, t Testimonial) (Testimonial, error)
	GetByID(ctx context.Context, id string) (Testimonial, error)
	Update(ctx context.Context, id string, req UpdateTestimonialRequest) (Testimonial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TestimonialFilter) ([]Testimonial, int64, error)
	// ListFeatured returns featured testimonials that are active and verified.
	ListFeatured(ctx context.Context, limit int) ([]Testimonial, error)
	ListByMinRating(ctx context.Context, rating int) ([]Testimonial, error)
	CountByRating(ctx context.Context) ([]RatingCount, error)
}
