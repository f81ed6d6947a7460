// Package auth carries the acting caller's identity through the request
// context. Authentication itself is delegated to an external identity
// provider; this package only reads what the edge has already verified.
package auth

import (
	"context"

	"github.com/nstepura/matmarket/internal/catalog"
)

// Caller identifies who is acting: their visibility role, the vendor they
// act for (vendors only) and their user id (cart operations).
type Caller struct {
	UserID   string
	VendorID string
	Role     catalog.Role
}

type callerKey struct{}

// WithCaller returns a context holding the caller identity.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext retrieves the caller from the context. A context without a
// caller yields the public role.
func FromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Caller{Role: catalog.RolePublic}
}
