package project

import "context"

// Repository is the project data access the validation layer consumes.
// GetByReferenceNumber returns (nil, nil) when no project matches.
type Repository interface {
	GetByReferenceNumber(ctx context.Context, ref string) (*Project, error)
	// NameTaken reports whether another project (a different reference
	// number) already uses the exact name. The storage layer's unique
	// constraint remains the authoritative guard.
	NameTaken(ctx context.Context, name, excludeRef string) (bool, error)
	// NextReferenceNumber allocates a fresh reference number under the
	// given RFCC code. Allocation is not rolled back on a failed save.
	NextReferenceNumber(ctx context.Context, rfccCode string) (string, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	// Update applies mapped storage columns to the project row and returns
	// the stored state.
	Update(ctx context.Context, ref string, columns map[string]any) (*Project, error)
}
