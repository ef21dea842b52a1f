package domain

import "github.com/google/uuid"

type (
	RoomID string
	Kind   string
)

// Matching domains. Pools and rooms never cross kinds.
const (
	KindVoice Kind = "voice"
	KindText  Kind = "text"
)

// Room is a confirmed pairing of exactly two participants.
type Room struct {
	ID      RoomID
	Kind    Kind
	Members [2]ParticipantID
}

func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

// Other returns the member of the room that is not id.
func (r *Room) Other(id ParticipantID) (ParticipantID, bool) {
	switch id {
	case r.Members[0]:
		return r.Members[1], true
	case r.Members[1]:
		return r.Members[0], true
	}
	return "", false
}
