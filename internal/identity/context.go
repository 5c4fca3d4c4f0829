// Package identity carries the authenticated actor through request contexts.
// Authentication itself is an external collaborator; user and org IDs are
// treated as opaque strings everywhere in the core.
package identity

import (
	"context"
	"strings"
)

type userKey struct{}
type orgKey struct{}

// WithUserID stores the acting user ID in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, strings.TrimSpace(userID))
}

// WithOrgID stores the active organization ID in the context.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgKey{}, strings.TrimSpace(orgID))
}

// UserIDFromContext returns the acting user ID, if set.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(userKey{}).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// OrgIDFromContext returns the active organization ID, if set.
func OrgIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(orgKey{}).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
