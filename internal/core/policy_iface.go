package core

import (
	"context"

	"github.com/dkeye/Helpline/internal/domain"
)

// MatchPolicy carries everything that differs between matching domains.
type MatchPolicy interface {
	Kind() domain.Kind
	// Validate rejects join requests the domain cannot queue.
	Validate(req domain.JoinRequest) error
	// RequiresIdentity reports whether the join is privileged.
	RequiresIdentity(req domain.JoinRequest) bool
	// Compatible reports whether a waiting candidate may pair with the requester.
	Compatible(candidate, requester *domain.Member) bool
}

// IdentityVerifier turns a bearer token into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
