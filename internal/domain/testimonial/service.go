package testimonial

import "context"

type TestimonialService interface {
	Create(ctx context.Context, req CreateTestimonialRequest) (Testimonial, error)
	Get(ctx context.Context, id string) (Testimonial, error)
	Update(ctx context.Context, id string, req UpdateTestimonialRequest) (Testimonial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TestimonialFilter) (ListTestimonialResponse, error)
	Featured(ctx context.Context, limit int) ([]Testimonial, error)
	// ByRating returns active testimonials rated at least rating.
	ByRating(ctx context.Context, rating int) ([]Testimonial, error)
	Stats(ctx context.Context) (TestimonialStats, error)
}
