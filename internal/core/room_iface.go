package core

import (
	"github.com/dkeye/Helpline/internal/domain"
)

// WaitingDTO is a read-only view of a queued participant (no transport fields).
type WaitingDTO struct {
	ID       domain.ParticipantID `json:"id"`
	Role     domain.Role          `json:"role"`
	Language domain.Language      `json:"language"`
}

// LaneStatus is the monitoring snapshot of one matching domain.
type LaneStatus struct {
	WaitingUsers   int          `json:"waitingUsers"`
	ActiveRooms    int          `json:"activeRooms"`
	WaitingDetails []WaitingDTO `json:"waitingDetails"`
}

// ParticipantView is a copy of a participant's pairing state.
type ParticipantView struct {
	ID       domain.ParticipantID
	Role     domain.Role
	Language domain.Language
	PeerID   domain.ParticipantID
	RoomID   domain.RoomID
	Waiting  bool
}
