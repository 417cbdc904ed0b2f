package common

import "context"

type contextKey string

const adminContextKey contextKey = "adminUser"

// AdminUser is the principal taken from a verified admin JWT.
type AdminUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// ContextWithAdmin stores the verified admin into context.
func ContextWithAdmin(ctx context.Context, user AdminUser) context.Context {
	return context.WithValue(ctx, adminContextKey, user)
}

// AdminFromContext extracts the verified admin from context.
func AdminFromContext(ctx context.Context) (AdminUser, bool) {
	user, ok := ctx.Value(adminContextKey).(AdminUser)
	return user, ok
}
