package app

import (
	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
)

// Lane bundles the store, matchmaker and relay of one matching domain.
type Lane struct {
	Store      *Store
	Matchmaker *Matchmaker
	Relay      *Relay
}

func NewLane(policy core.MatchPolicy, verifier core.IdentityVerifier) *Lane {
	store := NewStore(policy.Kind())
	return &Lane{
		Store:      store,
		Matchmaker: NewMatchmaker(store, policy, verifier),
		Relay:      NewRelay(store),
	}
}

func (l *Lane) Kind() domain.Kind { return l.Store.Kind() }
