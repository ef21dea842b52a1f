package app

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Helpline/internal/domain"
)

func pairedVoice(t *testing.T) (*Lane, *fakeConn, JoinResult, *fakeConn, JoinResult) {
	t.Helper()
	lane := NewLane(VoicePolicy{}, newVerifier())
	hc, h := join(t, lane, domain.RoleHelper, "en", "good")
	sc, s := join(t, lane, domain.RoleSeeker, "en", "")
	if !s.Paired {
		t.Fatalf("setup: not paired")
	}
	return lane, hc, h, sc, s
}

func TestSignalReachesPeerOpaque(t *testing.T) {
	lane, hc, h, _, s := pairedVoice(t)
	payload := json.RawMessage(`{"sdp":{"type":"offer","sdp":"v=0\r\n"},"extra":[1,2,3]}`)

	if !lane.Relay.Signal(s.ID, domain.SignalRequest{Type: domain.TypeSignal, To: h.ID, Data: payload}) {
		t.Fatalf("signal to peer dropped")
	}
	got := hc.last(t)
	if got["type"] != domain.TypeSignal || got["from"] != string(s.ID) {
		t.Fatalf("relayed envelope = %v", got)
	}
	data, _ := json.Marshal(got["data"])
	var want, have any
	_ = json.Unmarshal(payload, &want)
	_ = json.Unmarshal(data, &have)
	if string(mustJSON(t, want)) != string(mustJSON(t, have)) {
		t.Fatalf("payload altered: %s", data)
	}
}

func TestMessageReachesPeer(t *testing.T) {
	lane := NewLane(TextPolicy{}, nil)
	ac, a := join(t, lane, "visitor", "en", "")
	_, b := join(t, lane, "visitor", "en", "")

	if !lane.Relay.Message(b.ID, domain.MessageRequest{To: a.ID, Content: "hello"}) {
		t.Fatalf("message dropped")
	}
	got := ac.last(t)
	if got["type"] != domain.TypeMessage || got["content"] != "hello" || got["from"] != string(b.ID) {
		t.Fatalf("relayed envelope = %v", got)
	}
}

func TestMisaddressedPayloadsAreDropped(t *testing.T) {
	lane, hc, h, sc, s := pairedVoice(t)
	bc, b := join(t, lane, domain.RoleSeeker, "fr", "")

	before := map[*fakeConn]int{hc: len(hc.types(t)), sc: len(sc.types(t)), bc: len(bc.types(t))}

	cases := []struct {
		name     string
		from, to domain.ParticipantID
	}{
		{"to bystander", s.ID, b.ID},
		{"to self", s.ID, s.ID},
		{"from waiting participant", b.ID, h.ID},
		{"from unknown id", "ghost", h.ID},
		{"to unknown id", h.ID, "ghost"},
	}
	for _, tc := range cases {
		if lane.Relay.Signal(tc.from, domain.SignalRequest{To: tc.to, Data: json.RawMessage(`{}`)}) {
			t.Fatalf("%s: delivered", tc.name)
		}
	}
	for conn, n := range before {
		if got := len(conn.types(t)); got != n {
			t.Fatalf("a connection received %d new frames", got-n)
		}
	}
}

func TestLeaveWhileWaitingIsSilent(t *testing.T) {
	lane := NewLane(TextPolicy{}, nil)
	others := []*fakeConn{}
	for _, lang := range []domain.Language{"en", "fr", "de"} {
		c, _ := join(t, lane, "visitor", lang, "")
		others = append(others, c)
	}
	_, leaver := join(t, lane, "visitor", "it", "")

	dep, ok := lane.Relay.Leave(leaver.ID)
	if !ok || !dep.WasWaiting || dep.Peer != nil {
		t.Fatalf("departure = %+v ok=%v", dep, ok)
	}
	for _, c := range others {
		if got := c.types(t); len(got) != 1 {
			t.Fatalf("bystander frames = %v, want only waiting", got)
		}
	}
	if st := lane.Store.Snapshot(); st.WaitingUsers != 3 {
		t.Fatalf("waiting = %d, want 3", st.WaitingUsers)
	}
	checkInvariants(t, lane.Store)
}

func TestLeaveWhileActiveNotifiesPeerOnce(t *testing.T) {
	lane, hc, h, sc, s := pairedVoice(t)
	room := domain.RoomID(hc.last(t)["roomId"].(string))

	dep, ok := lane.Relay.Leave(h.ID)
	if !ok || dep.Peer == nil || dep.Peer.ID != s.ID || dep.RoomID != room {
		t.Fatalf("departure = %+v", dep)
	}
	// the remaining side leaving afterwards must not echo anything back
	lane.Relay.Leave(s.ID)
	lane.Relay.Leave(h.ID)

	if got := sc.count(t, domain.TypePeerDisconnected); got != 1 {
		t.Fatalf("seeker peer_disconnected = %d, want 1", got)
	}
	if got := hc.count(t, domain.TypePeerDisconnected); got != 0 {
		t.Fatalf("leaver got peer_disconnected")
	}
	if st := lane.Store.Snapshot(); st.ActiveRooms != 0 {
		t.Fatalf("room %s survived", room)
	}
	if lane.Relay.Signal(s.ID, domain.SignalRequest{To: h.ID}) {
		t.Fatalf("relay into a destroyed room succeeded")
	}
	if st := lane.Store.Snapshot(); st.WaitingUsers != 0 || st.ActiveRooms != 0 {
		t.Fatalf("state leaked: %+v", st)
	}
}

func TestRemainingPeerCanRelayToNoOne(t *testing.T) {
	lane, _, h, _, s := pairedVoice(t)
	lane.Relay.Leave(s.ID)
	if lane.Relay.Signal(h.ID, domain.SignalRequest{To: s.ID}) {
		t.Fatalf("remaining participant reached its former peer")
	}
	if view, ok := lane.Store.Lookup(h.ID); ok {
		t.Fatalf("remaining participant still joined: %+v", view)
	}
	checkInvariants(t, lane.Store)
}

func TestRelayToClosedConnectionFails(t *testing.T) {
	lane, hc, h, _, s := pairedVoice(t)
	hc.Close()
	if lane.Relay.Signal(s.ID, domain.SignalRequest{To: h.ID}) {
		t.Fatalf("delivered to a closed connection")
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
