// Package context carries request-scoped correlation identifiers.
package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	schoolIDKey  contextKey = "school_id"
	providerKey  contextKey = "provider"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithSchoolID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, schoolIDKey, id)
}

func SchoolIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(schoolIDKey).(string)
	return id
}

func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, providerKey, provider)
}

func ProviderFromContext(ctx context.Context) string {
	provider, _ := ctx.Value(providerKey).(string)
	return provider
}
