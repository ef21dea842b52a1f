package orch

import (
	"github.com/dkeye/Helpline/internal/app"
	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
)

type Orchestrator struct {
	Voice *app.Lane
	Text  *app.Lane
}

// New wires the voice and text lanes. Only the voice lane consults verifier.
func New(verifier core.IdentityVerifier) *Orchestrator {
	return &Orchestrator{
		Voice: app.NewLane(app.VoicePolicy{}, verifier),
		Text:  app.NewLane(app.TextPolicy{}, nil),
	}
}

func (o *Orchestrator) Lane(kind domain.Kind) (*app.Lane, bool) {
	switch kind {
	case domain.KindVoice:
		return o.Voice, o.Voice != nil
	case domain.KindText:
		return o.Text, o.Text != nil
	}
	return nil, false
}

// Status mirrors the monitoring payload served at /voice-status.
type Status struct {
	Voice core.LaneStatus `json:"voice"`
	Chat  core.LaneStatus `json:"chat"`
}

func (o *Orchestrator) Status() Status {
	return Status{
		Voice: o.Voice.Store.Snapshot(),
		Chat:  o.Text.Store.Snapshot(),
	}
}
