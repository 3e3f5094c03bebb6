// internal/domain/client.go
package domain

import (
	"time"
)

// ClientRecord is the stored auth record created when a client signs up.
// The email is the uniqueness key.
type ClientRecord struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client is the roster entry derived from a ClientRecord. ID is the email.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToClient converts a stored record to its roster view.
func (r ClientRecord) ToClient() Client {
	return Client{
		ID:    r.Email,
		Name:  r.Name,
		Email: r.Email,
	}
}

// FitnessLevel of a client profile.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "Beginner"
	FitnessIntermediate FitnessLevel = "Intermediate"
	FitnessAdvanced     FitnessLevel = "Advanced"
)

// ClientProfile is the richer client shape used as context for AI suggestions.
// Profiles come from static sample data, not from the roster.
type ClientProfile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Age            int          `json:"age"`
	Gender         string       `json:"gender"`
	Weight         float64      `json:"weight"` // kg
	Height         float64      `json:"height"` // cm
	FitnessLevel   FitnessLevel `json:"fitnessLevel"`
	Goals          string       `json:"goals"`
	WorkoutHistory string       `json:"workoutHistory"`
	Progress       int          `json:"progress"` // Percentage, 0-100
}

// RosterEntry is a client together with the assignment that still resolves, if any.
type RosterEntry struct {
	Client     Client              `json:"client"`
	Assignment *ResolvedAssignment `json:"assignment,omitempty"`
}
