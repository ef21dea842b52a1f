package domain

import "encoding/json"

// Inbound envelope types.
const (
	TypeJoin    = "join"
	TypeSignal  = "signal"
	TypeMessage = "message"
	TypeEnd     = "end"
)

// Outbound envelope types.
const (
	TypeWaiting          = "waiting"
	TypeMatched          = "matched"
	TypePeerDisconnected = "peer_disconnected"
	TypeError            = "error"
)

type Envelope struct {
	Type string `json:"type"`
}

type JoinRequest struct {
	Type     string   `json:"type"`
	Role     Role     `json:"role"`
	Language Language `json:"language"`
	Token    string   `json:"token,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

type SignalRequest struct {
	Type string          `json:"type"`
	To   ParticipantID   `json:"to"`
	Data json.RawMessage `json:"data"`
}

type MessageRequest struct {
	Type    string        `json:"type"`
	To      ParticipantID `json:"to"`
	Content string        `json:"content"`
}

type Matched struct {
	Type   string        `json:"type"`
	RoomID RoomID        `json:"roomId"`
	Role   Role          `json:"role"`
	PeerID ParticipantID `json:"peerId"`
}

type SignalRelay struct {
	Type string          `json:"type"`
	From ParticipantID   `json:"from"`
	Data json.RawMessage `json:"data"`
}

type MessageRelay struct {
	Type    string        `json:"type"`
	From    ParticipantID `json:"from"`
	Content string        `json:"content"`
}

type ErrorNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func Notice(typ string) Envelope { return Envelope{Type: typ} }
