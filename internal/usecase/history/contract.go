package history

import "context"

// Repository persists the history list.
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, entries []string) error
	Clear(ctx context.Context) error
}
