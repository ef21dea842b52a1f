package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
	"github.com/rs/zerolog/log"
)

type participantEntry struct {
	Member *domain.Member
	Conn   core.SignalConnection
	PeerID domain.ParticipantID
	RoomID domain.RoomID
}

// Endpoint is what callers need to notify one side of a pairing.
type Endpoint struct {
	ID   domain.ParticipantID
	Role domain.Role
	Conn core.SignalConnection
}

// Pairing is the outcome of a successful match.
type Pairing struct {
	RoomID    domain.RoomID
	Requester Endpoint
	Candidate Endpoint
}

// Departure describes what a teardown left behind.
type Departure struct {
	WasWaiting bool
	RoomID     domain.RoomID
	// Peer is the remaining participant of a destroyed room, if any.
	Peer *Endpoint
}

// Store owns every participant and room record of one matching domain.
// All compound operations run under a single lock.
type Store struct {
	kind domain.Kind

	mu           sync.Mutex
	participants map[domain.ParticipantID]*participantEntry
	waiting      []domain.ParticipantID
	rooms        map[domain.RoomID]*domain.Room
}

func NewStore(kind domain.Kind) *Store {
	return &Store{
		kind:         kind,
		participants: make(map[domain.ParticipantID]*participantEntry),
		rooms:        make(map[domain.RoomID]*domain.Room),
	}
}

func (s *Store) Kind() domain.Kind { return s.kind }

// MatchOrEnqueue pairs m with the first compatible waiting participant,
// or appends m to the tail of the waiting pool. queue runs inside the
// critical section with the pairing (nil when m was enqueued); it may only
// hand frames to TrySend, which never blocks.
func (s *Store) MatchOrEnqueue(
	m *domain.Member,
	conn core.SignalConnection,
	compatible func(candidate, requester *domain.Member) bool,
	queue func(*Pairing),
) (*Pairing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[m.ID]; ok {
		return nil, domain.ErrAlreadyJoined
	}
	entry := &participantEntry{Member: m, Conn: conn}

	for i, cid := range s.waiting {
		cand, ok := s.participants[cid]
		if !ok || !compatible(cand.Member, m) {
			continue
		}
		s.waiting = slices.Delete(s.waiting, i, i+1)

		room := &domain.Room{
			ID:      domain.NewRoomID(),
			Kind:    s.kind,
			Members: [2]domain.ParticipantID{cid, m.ID},
		}
		s.rooms[room.ID] = room
		s.participants[m.ID] = entry

		entry.PeerID, entry.RoomID = cid, room.ID
		cand.PeerID, cand.RoomID = m.ID, room.ID

		log.Info().
			Str("module", "app.store").
			Str("domain", string(s.kind)).
			Str("room", string(room.ID)).
			Str("pid", string(m.ID)).
			Str("peer", string(cid)).
			Msg("room created")
		p := &Pairing{
			RoomID:    room.ID,
			Requester: Endpoint{ID: m.ID, Role: m.Role, Conn: conn},
			Candidate: Endpoint{ID: cid, Role: cand.Member.Role, Conn: cand.Conn},
		}
		if queue != nil {
			queue(p)
		}
		return p, nil
	}

	s.participants[m.ID] = entry
	s.waiting = append(s.waiting, m.ID)
	log.Info().
		Str("module", "app.store").
		Str("domain", string(s.kind)).
		Str("pid", string(m.ID)).
		Int("waiting", len(s.waiting)).
		Msg("enqueued")
	if queue != nil {
		queue(nil)
	}
	return nil, nil
}

// Deliver queues frame to to, provided to is from's current peer.
func (s *Store) Deliver(from, to domain.ParticipantID, frame core.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, ok := s.participants[from]
	if !ok || sender.RoomID == "" || sender.PeerID != to {
		return false
	}
	if _, ok := s.rooms[sender.RoomID]; !ok {
		return false
	}
	peer, ok := s.participants[to]
	if !ok || peer.PeerID != from {
		return false
	}
	return peer.Conn.TrySend(frame) == nil
}

// Teardown removes id from the waiting pool or destroys its room. The
// remaining member of a destroyed room is dropped too, so it is unjoined
// until it joins again. Unknown ids are a no-op. queue runs inside the
// critical section, like in MatchOrEnqueue.
func (s *Store) Teardown(id domain.ParticipantID, queue func(Departure)) (Departure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.participants[id]
	if !ok {
		return Departure{}, false
	}
	delete(s.participants, id)

	var dep Departure
	if i := slices.Index(s.waiting, id); i >= 0 {
		s.waiting = slices.Delete(s.waiting, i, i+1)
		dep.WasWaiting = true
	}

	if entry.RoomID != "" {
		dep.RoomID = entry.RoomID
		if room, ok := s.rooms[entry.RoomID]; ok {
			delete(s.rooms, entry.RoomID)
			if otherID, ok := room.Other(id); ok {
				if other, ok := s.participants[otherID]; ok {
					delete(s.participants, otherID)
					other.PeerID, other.RoomID = "", ""
					dep.Peer = &Endpoint{ID: otherID, Role: other.Member.Role, Conn: other.Conn}
				}
			}
		}
		entry.PeerID, entry.RoomID = "", ""
	}

	log.Info().
		Str("module", "app.store").
		Str("domain", string(s.kind)).
		Str("pid", string(id)).
		Bool("was_waiting", dep.WasWaiting).
		Str("room", string(dep.RoomID)).
		Msg("participant removed")
	if queue != nil {
		queue(dep)
	}
	return dep, true
}

// Lookup returns a copy of id's pairing state.
func (s *Store) Lookup(id domain.ParticipantID) (core.ParticipantView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.participants[id]
	if !ok {
		return core.ParticipantView{}, false
	}
	return core.ParticipantView{
		ID:       id,
		Role:     e.Member.Role,
		Language: e.Member.Language,
		PeerID:   e.PeerID,
		RoomID:   e.RoomID,
		Waiting:  slices.Contains(s.waiting, id),
	}, true
}

func (s *Store) Snapshot() core.LaneStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := core.LaneStatus{
		WaitingUsers:   len(s.waiting),
		ActiveRooms:    len(s.rooms),
		WaitingDetails: make([]core.WaitingDTO, 0, len(s.waiting)),
	}
	for _, id := range s.waiting {
		if e, ok := s.participants[id]; ok {
			out.WaitingDetails = append(out.WaitingDetails, core.WaitingDTO{
				ID:       id,
				Role:     e.Member.Role,
				Language: e.Member.Language,
			})
		}
	}
	return out
}
