package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
)

var errQueueFull = errors.New("queue full")

// fakeConn records every frame queued to it.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return domain.ErrConnectionClosed
	}
	if f.full {
		return errQueueFull
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) envelopes(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("frame is not json: %v", err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) types(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, env := range f.envelopes(t) {
		typ, _ := env["type"].(string)
		out = append(out, typ)
	}
	return out
}

func (f *fakeConn) last(t *testing.T) map[string]any {
	t.Helper()
	envs := f.envelopes(t)
	if len(envs) == 0 {
		t.Fatalf("no frames received")
	}
	return envs[len(envs)-1]
}

func (f *fakeConn) count(t *testing.T, typ string) int {
	t.Helper()
	n := 0
	for _, got := range f.types(t) {
		if got == typ {
			n++
		}
	}
	return n
}

// stubVerifier accepts the tokens in valid.
type stubVerifier struct {
	mu      sync.Mutex
	valid   map[string]*domain.Identity
	err     error
	explode bool
	calls   int
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	v.mu.Lock()
	v.calls++
	v.mu.Unlock()
	if v.explode {
		panic("verifier exploded")
	}
	if v.err != nil {
		return nil, v.err
	}
	if ident, ok := v.valid[token]; ok {
		return ident, nil
	}
	return nil, errors.New("unknown token")
}

func newVerifier() *stubVerifier {
	return &stubVerifier{valid: map[string]*domain.Identity{
		"good": {ID: "USER_1", Name: "Ada"},
	}}
}

func join(t *testing.T, lane *Lane, role domain.Role, lang domain.Language, token string) (*fakeConn, JoinResult) {
	t.Helper()
	conn := &fakeConn{}
	res, err := lane.Matchmaker.Join(context.Background(), conn, domain.JoinRequest{
		Type:     domain.TypeJoin,
		Role:     role,
		Language: lang,
		Token:    token,
	})
	if err != nil {
		t.Fatalf("join %s/%s: %v", role, lang, err)
	}
	return conn, res
}

// checkInvariants verifies exclusive pool membership and symmetric pairing.
func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	waiting := make(map[domain.ParticipantID]bool, len(s.waiting))
	for _, id := range s.waiting {
		if waiting[id] {
			t.Fatalf("%s queued twice", id)
		}
		waiting[id] = true
		e, ok := s.participants[id]
		if !ok {
			t.Fatalf("%s waiting without a record", id)
		}
		if e.PeerID != "" || e.RoomID != "" {
			t.Fatalf("%s waiting while linked to %s/%s", id, e.PeerID, e.RoomID)
		}
	}

	active := 0
	for id, e := range s.participants {
		if e.RoomID == "" {
			if !waiting[id] {
				t.Fatalf("%s neither waiting nor active", id)
			}
			continue
		}
		if waiting[id] {
			t.Fatalf("%s active and waiting", id)
		}
		peer, ok := s.participants[e.PeerID]
		if !ok {
			t.Fatalf("%s linked to missing peer %s", id, e.PeerID)
		}
		if peer.PeerID != id || peer.RoomID != e.RoomID {
			t.Fatalf("asymmetric link %s -> %s", id, e.PeerID)
		}
		room, ok := s.rooms[e.RoomID]
		if !ok {
			t.Fatalf("%s in missing room %s", id, e.RoomID)
		}
		if _, ok := room.Other(id); !ok {
			t.Fatalf("room %s does not list %s", e.RoomID, id)
		}
		active++
	}
	if active != 2*len(s.rooms) {
		t.Fatalf("active participants %d, rooms %d", active, len(s.rooms))
	}
}
