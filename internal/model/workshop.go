package model

import (
	"time"

	"github.com/google/uuid"
)

// Workshop represents a bookable workshop offering.
type Workshop struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// WorkshopSession represents a scheduled run of a workshop with a
// limited number of spots.
type WorkshopSession struct {
	ID             uuid.UUID `json:"id" db:"id"`
	WorkshopID     uuid.UUID `json:"workshop_id" db:"workshop_id"`
	Date           time.Time `json:"date" db:"date"`
	AvailableSpots int       `json:"available_spots" db:"available_spots"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// WorkshopDetail is a workshop with its sessions attached.
type WorkshopDetail struct {
	Workshop
	Sessions []WorkshopSession `json:"workshop_sessions"`
}

// SessionDetail is a session with its parent workshop attached.
type SessionDetail struct {
	WorkshopSession
	Workshop *Workshop `json:"workshops,omitempty"`
}

// Event represents a public calendar event, optionally tied to a workshop.
type Event struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	WorkshopID *uuid.UUID `json:"workshop_id" db:"workshop_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    *time.Time `json:"end_date" db:"end_date"`
	IsPublic   bool       `json:"is_public" db:"is_public"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// EventDetail is an event with its workshop attached when one is linked.
type EventDetail struct {
	Event
	Workshop *Workshop `json:"workshops,omitempty"`
}
