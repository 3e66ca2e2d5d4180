package http

import (
	"context"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

func withAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// AdminIDFromContext returns the authenticated admin's user id, or "" when
// the request is unauthenticated.
func AdminIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(adminIDKey).(string); ok {
		return id
	}
	return ""
}
