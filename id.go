package tripbook

import "github.com/google/uuid"

// NewID returns a unique identifier for a newly created entity.
func NewID() string { return uuid.NewString() }
