package rtc

import (
	"github.com/dkeye/Helpline/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// DefaultICEServers is used when nothing is configured.
func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{
		{URLs: []string{"stun:stun.l.google.com:19302"}},
		{URLs: []string{"stun:stun1.l.google.com:19302"}},
		{URLs: []string{"stun:stun2.l.google.com:19302"}},
	}
}

// ICEServers converts configured entries, dropping URLs that do not parse
// as stun/turn URIs and entries left without any URL.
func ICEServers(servers []config.ICEServer) []webrtc.ICEServer {
	if len(servers) == 0 {
		return DefaultICEServers()
	}
	out := make([]webrtc.ICEServer, 0, len(servers))
	for _, s := range servers {
		urls := make([]string, 0, len(s.URLs))
		for _, raw := range s.URLs {
			if _, err := stun.ParseURI(raw); err != nil {
				log.Warn().Err(err).Str("module", "rtc").Str("url", raw).Msg("skipping ice server url")
				continue
			}
			urls = append(urls, raw)
		}
		if len(urls) == 0 {
			continue
		}
		srv := webrtc.ICEServer{URLs: urls, Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
			srv.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, srv)
	}
	if len(out) == 0 {
		return DefaultICEServers()
	}
	return out
}
