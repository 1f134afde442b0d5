package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Domain-specific ID types
type (
	UploadID  ID
	RequestID ID
)

// String conversions for domain IDs
func (id UploadID) String() string  { return ID(id).String() }
func (id RequestID) String() string { return ID(id).String() }

func NewUploadID() UploadID   { return UploadID(NewID()) }
func NewRequestID() RequestID { return RequestID(NewID()) }
