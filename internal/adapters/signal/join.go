package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dkeye/Helpline/internal/domain"
)

func (ctl *SignalWSController) handleJoin(ctx context.Context, st *connState, data []byte) {
	if st.pid != "" {
		if _, ok := ctl.Lane.Store.Lookup(st.pid); ok {
			st.logger.Warn().Msg("join ignored, already joined")
			return
		}
		// the peer left and took the room with it
		st.logger.Info().Msg("rejoin after session end")
		st.pid = ""
		st.logger = st.base
	}
	var p domain.JoinRequest
	if err := json.Unmarshal(data, &p); err != nil {
		st.logger.Warn().Err(err).Msg("bad join payload")
		return
	}

	res, err := ctl.Lane.Matchmaker.Join(ctx, st.conn, p)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		// the matchmaker already sent the error and closed the connection
		st.done = true
		return
	case err != nil:
		st.logger.Warn().Err(err).Msg("join rejected")
		return
	}

	st.pid = res.ID
	st.logger = st.base.With().Str("pid", string(res.ID)).Logger()
	st.logger.Info().Bool("paired", res.Paired).Str("room", string(res.RoomID)).Msg("join")
}
