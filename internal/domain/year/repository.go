package year

import "context"

// Repository describes year persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Year, error)
	GetByYear(ctx context.Context, year int) (Year, bool, error)
	Upsert(ctx context.Context, y Year) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, year int) (bool, error)
}
