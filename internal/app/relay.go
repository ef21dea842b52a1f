package app

import (
	"encoding/json"

	"github.com/dkeye/Helpline/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards opaque payloads between the two members of a room and
// propagates departures.
type Relay struct {
	store *Store
}

func NewRelay(store *Store) *Relay {
	return &Relay{store: store}
}

// Forward delivers v to `to` only when `to` is from's current peer.
// Misaddressed or undeliverable payloads are dropped without telling the sender.
func (r *Relay) Forward(from, to domain.ParticipantID, v any) bool {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Str("pid", string(from)).Msg("marshal relay frame")
		return false
	}
	if !r.store.Deliver(from, to, frame) {
		log.Debug().
			Str("module", "app.relay").
			Str("domain", string(r.store.Kind())).
			Str("pid", string(from)).
			Str("to", string(to)).
			Msg("relay dropped")
		return false
	}
	return true
}

// Signal relays a voice negotiation payload.
func (r *Relay) Signal(from domain.ParticipantID, req domain.SignalRequest) bool {
	return r.Forward(from, req.To, domain.SignalRelay{
		Type: domain.TypeSignal,
		From: from,
		Data: req.Data,
	})
}

// Message relays a text payload.
func (r *Relay) Message(from domain.ParticipantID, req domain.MessageRequest) bool {
	return r.Forward(from, req.To, domain.MessageRelay{
		Type:    domain.TypeMessage,
		From:    from,
		Content: req.Content,
	})
}

// Leave tears id down. A remaining peer receives exactly one
// peer_disconnected and is not re-queued; it has to join again.
func (r *Relay) Leave(id domain.ParticipantID) (Departure, bool) {
	dep, ok := r.store.Teardown(id, func(d Departure) {
		if d.Peer != nil {
			sendJSON(d.Peer.Conn, domain.Notice(domain.TypePeerDisconnected))
		}
	})
	if ok && dep.Peer != nil {
		log.Info().
			Str("module", "app.relay").
			Str("domain", string(r.store.Kind())).
			Str("pid", string(id)).
			Str("peer", string(dep.Peer.ID)).
			Str("room", string(dep.RoomID)).
			Msg("room closed, peer notified")
	}
	return dep, ok
}
