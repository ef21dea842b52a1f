package domain

import "github.com/google/uuid"

type (
	ParticipantID string
	Role          string
	Language      string
)

const (
	RoleHelper Role = "helper"
	RoleSeeker Role = "seeker"
)

const MaxReasonLen = 512

// Member is the matching meta of a joined participant.
// No transport or lifecycle logic here.
type Member struct {
	ID       ParticipantID
	Kind     Kind
	Role     Role
	Language Language

	// Reason is free text a text-chat participant may attach to its join.
	Reason string
	// Identity is set only for verified voice helpers.
	Identity *Identity
}

func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.NewString())
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(kind Kind, req JoinRequest) *Member {
	reason := req.Reason
	if len(reason) > MaxReasonLen {
		reason = reason[:MaxReasonLen]
	}
	return &Member{
		ID:       NewParticipantID(),
		Kind:     kind,
		Role:     req.Role,
		Language: req.Language,
		Reason:   reason,
	}
}
