// Package service defines interfaces for infrastructure collaborators the
// application layer depends on.
package service

import "context"

// IdentityClaims is the subset of identity-provider token claims the system
// consumes. Role and verification are NEVER taken from claims; they live on
// the persisted User record.
type IdentityClaims struct {
	UID   string
	Email string
	Name  string
}

// IdentityVerifier validates a bearer token against the external identity
// provider and returns its claims.
type IdentityVerifier interface {
	// VerifyIDToken checks the token's signature, audience, and expiry.
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error)
}
