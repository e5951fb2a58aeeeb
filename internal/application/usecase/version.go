package usecase

import "context"

type expectedVersionKey struct{}

// WithExpectedVersion marca ctx con la versión del árbol que el cliente leyó (If-Match).
// Vacío o "*" significa sin condición.
func WithExpectedVersion(ctx context.Context, version string) context.Context {
	if version == "" || version == "*" {
		return ctx
	}
	return context.WithValue(ctx, expectedVersionKey{}, version)
}

func expectedVersion(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(expectedVersionKey{}).(string)
	return v, ok
}
