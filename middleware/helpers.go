package middleware

import (
	"context"
	"errors"
)

type contextKey string

const ownerContextKey contextKey = "owner_id"

// Claim that carries the owner id
const jwtClaimUserID = "user_id"

var ErrNoOwner = errors.New("owner id not found in context")

func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// GetOwnerIDFromContext returns the owner id placed by Authenticate.
func GetOwnerIDFromContext(ctx context.Context) (string, error) {
	ownerID, ok := ctx.Value(ownerContextKey).(string)
	if !ok || ownerID == "" {
		return "", ErrNoOwner
	}
	return ownerID, nil
}
