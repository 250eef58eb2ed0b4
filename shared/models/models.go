package models

import (
	"time"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new random ID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// DeterministicID derives a stable ID from a name within a namespace.
// Used for command events so that a re-sent command carries the same
// event ID as the original and collapses on the consumer's dedup ledger.
func DeterministicID(namespace ID, name string) ID {
	ns, err := uuid.Parse(namespace.String())
	if err != nil {
		ns = uuid.NameSpaceOID
	}
	return ID(uuid.NewSHA1(ns, []byte(name)).String())
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	_, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is empty
func (id ID) IsZero() bool {
	return id == ""
}

// Timestamps represents creation and update times
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTimestamps creates new timestamps
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update updates the UpdatedAt timestamp
func (t Timestamps) Update() Timestamps {
	t.UpdatedAt = time.Now()
	return t
}

// Version represents entity version for optimistic locking
type Version struct {
	Value int
}

// NewVersion creates new version
func NewVersion() Version {
	return Version{Value: 1}
}

// Update increments version
func (v Version) Update() Version {
	v.Value++
	return v
}
