package area

import "context"

// Repository is a minimal-field lookup sufficient for parent-chain walking.
// GetByID returns (nil, nil) when the row is absent; callers decide whether
// absence is fatal.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Area, error)
}
