package rtc

import (
	"testing"

	"github.com/dkeye/Helpline/internal/config"
)

func TestICEServersDefaults(t *testing.T) {
	got := ICEServers(nil)
	if len(got) != 3 || got[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("defaults = %+v", got)
	}
}

func TestICEServersFiltersInvalidURLs(t *testing.T) {
	got := ICEServers([]config.ICEServer{
		{URLs: []string{"stun:stun.example.org:3478", "http://not-ice"}},
		{URLs: []string{"turn:turn.example.org:3478?transport=udp"}, Username: "u", Credential: "p"},
		{URLs: []string{"::::"}},
	})
	if len(got) != 2 {
		t.Fatalf("servers = %+v, want 2 entries", got)
	}
	if len(got[0].URLs) != 1 || got[0].URLs[0] != "stun:stun.example.org:3478" {
		t.Fatalf("first entry urls = %v", got[0].URLs)
	}
	if got[1].Username != "u" {
		t.Fatalf("turn entry = %+v", got[1])
	}
}

func TestICEServersAllInvalidFallsBack(t *testing.T) {
	got := ICEServers([]config.ICEServer{{URLs: []string{"bogus"}}})
	if len(got) != 3 {
		t.Fatalf("servers = %+v, want defaults", got)
	}
}
