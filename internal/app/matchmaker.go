package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	msgAuthRequired       = "Helper authentication required"
	msgInvalidCredentials = "Invalid helper credentials"
)

// JoinResult is either waiting (Paired == false) or a fresh pairing.
type JoinResult struct {
	ID     domain.ParticipantID
	Paired bool
	RoomID domain.RoomID
	PeerID domain.ParticipantID
}

// Matchmaker converts join requests of one domain into a pairing or a wait.
type Matchmaker struct {
	store    *Store
	policy   core.MatchPolicy
	verifier core.IdentityVerifier
}

func NewMatchmaker(store *Store, policy core.MatchPolicy, verifier core.IdentityVerifier) *Matchmaker {
	return &Matchmaker{store: store, policy: policy, verifier: verifier}
}

// Join registers conn under a new participant id. A rejected privileged
// join gets an error notice and its connection is closed.
func (mm *Matchmaker) Join(ctx context.Context, conn core.SignalConnection, req domain.JoinRequest) (JoinResult, error) {
	if err := mm.policy.Validate(req); err != nil {
		return JoinResult{}, err
	}

	m := domain.NewMember(mm.policy.Kind(), req)
	logger := log.With().
		Str("module", "app.matchmaker").
		Str("domain", string(m.Kind)).
		Str("pid", string(m.ID)).
		Str("role", string(m.Role)).
		Str("language", string(m.Language)).
		Logger()

	if mm.policy.RequiresIdentity(req) {
		ident, err := mm.authenticate(ctx, req.Token)
		if err != nil {
			msg := msgInvalidCredentials
			if errors.Is(err, domain.ErrTokenMissing) {
				msg = msgAuthRequired
			}
			logger.Warn().Err(err).Msg("privileged join rejected")
			sendJSON(conn, domain.ErrorNotice{Type: domain.TypeError, Message: msg})
			conn.Close()
			return JoinResult{}, err
		}
		m.Identity = ident
		logger.Info().Str("identity", ident.DisplayName()).Msg("helper authenticated")
	}

	pairing, err := mm.store.MatchOrEnqueue(m, conn, mm.policy.Compatible, func(p *Pairing) {
		if p == nil {
			sendJSON(conn, domain.Notice(domain.TypeWaiting))
			return
		}
		sendJSON(p.Requester.Conn, domain.Matched{
			Type:   domain.TypeMatched,
			RoomID: p.RoomID,
			Role:   p.Requester.Role,
			PeerID: p.Candidate.ID,
		})
		sendJSON(p.Candidate.Conn, domain.Matched{
			Type:   domain.TypeMatched,
			RoomID: p.RoomID,
			Role:   p.Candidate.Role,
			PeerID: p.Requester.ID,
		})
	})
	if err != nil {
		return JoinResult{}, fmt.Errorf("join %s: %w", m.ID, err)
	}
	if pairing == nil {
		logger.Info().Msg("waiting for peer")
		return JoinResult{ID: m.ID}, nil
	}

	logger.Info().Str("room", string(pairing.RoomID)).Str("peer", string(pairing.Candidate.ID)).Msg("matched")
	return JoinResult{
		ID:     m.ID,
		Paired: true,
		RoomID: pairing.RoomID,
		PeerID: pairing.Candidate.ID,
	}, nil
}

// authenticate delegates to the verifier; any verifier fault counts as an
// invalid token.
func (mm *Matchmaker) authenticate(ctx context.Context, token string) (ident *domain.Identity, err error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenMissing)
	}
	if mm.verifier == nil {
		return nil, fmt.Errorf("%w: no identity verifier", domain.ErrUnauthorized)
	}
	defer func() {
		if r := recover(); r != nil {
			ident, err = nil, fmt.Errorf("%w: verifier panic: %v", domain.ErrUnauthorized, r)
		}
	}()
	ident, err = mm.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if ident == nil {
		return nil, fmt.Errorf("%w: empty identity", domain.ErrUnauthorized)
	}
	return ident, nil
}
