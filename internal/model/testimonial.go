package model

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial represents feedback left by a user for a workshop.
// New testimonials start unapproved and unfeatured.
type Testimonial struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	WorkshopID uuid.UUID `json:"workshop_id" db:"workshop_id"`
	Content    string    `json:"content" db:"content"`
	Position   *string   `json:"position" db:"position"`
	Company    *string   `json:"company" db:"company"`
	Rating     int       `json:"rating" db:"rating"`
	IsApproved bool      `json:"is_approved" db:"is_approved"`
	IsFeatured bool      `json:"is_featured" db:"is_featured"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TestimonialRequest represents the request payload for submitting a
// testimonial. The author is resolved by email.
type TestimonialRequest struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone"`
	WorkshopID uuid.UUID `json:"workshopId"`
	Content    string    `json:"content"`
	Position   *string   `json:"position"`
	Company    *string   `json:"company"`
	Rating     int       `json:"rating"`
}

// TestimonialDetail is a testimonial with author and workshop names joined.
type TestimonialDetail struct {
	Testimonial
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
	WorkshopName string `json:"workshop_name"`
}
