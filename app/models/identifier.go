package models

import "github.com/google/uuid"

// NewID returns a time-ordered identifier so that store keys sort by
// creation time.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ParseID checks that raw is a canonical lowercase UUID and parses it.
// label names the input in the returned error.
func ParseID(raw, label string) (uuid.UUID, error) {
	if err := validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, &InvalidIdentifierError{Label: label}
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, &InvalidIdentifierError{Label: label}
	}
	return id, nil
}
