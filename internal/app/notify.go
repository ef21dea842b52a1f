package app

import (
	"encoding/json"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/rs/zerolog/log"
)

// sendJSON is fire-and-forget: encoding or queueing failures are logged and dropped.
func sendJSON(c core.SignalConnection, v any) bool {
	if c == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("sendJSON marshal")
		return false
	}
	if err := c.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "app").Msg("sendJSON dropped")
		return false
	}
	return true
}
