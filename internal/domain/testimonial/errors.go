package testimonial

import "errors"

var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrProjectNotFound     = errors.New("referenced project not found")
)
