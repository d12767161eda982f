package repository

import "context"

type indexCreator interface {
	CreateIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every repository that declares
// some. Called once at startup.
func EnsureIndexes(ctx context.Context, repos ...any) error {
	for _, r := range repos {
		if c, ok := r.(indexCreator); ok {
			if err := c.CreateIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
