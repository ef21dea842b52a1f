package app

import (
	"fmt"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
)

// VoicePolicy pairs a helper with a seeker of the same language.
// Helpers must present a verified identity.
type VoicePolicy struct{}

func (VoicePolicy) Kind() domain.Kind { return domain.KindVoice }

func (VoicePolicy) Validate(req domain.JoinRequest) error {
	switch req.Role {
	case domain.RoleHelper, domain.RoleSeeker:
		return nil
	}
	return fmt.Errorf("voice role %q: %w", req.Role, domain.ErrInvalidRole)
}

func (VoicePolicy) RequiresIdentity(req domain.JoinRequest) bool {
	return req.Role == domain.RoleHelper
}

func (VoicePolicy) Compatible(candidate, requester *domain.Member) bool {
	return candidate.Language == requester.Language && candidate.Role != requester.Role
}

// TextPolicy pairs any two participants of the same language.
type TextPolicy struct{}

func (TextPolicy) Kind() domain.Kind { return domain.KindText }

func (TextPolicy) Validate(domain.JoinRequest) error { return nil }

func (TextPolicy) RequiresIdentity(domain.JoinRequest) bool { return false }

func (TextPolicy) Compatible(candidate, requester *domain.Member) bool {
	return candidate.Language == requester.Language
}

var (
	_ core.MatchPolicy = VoicePolicy{}
	_ core.MatchPolicy = TextPolicy{}
)
