package signal

import (
	"encoding/json"

	"github.com/dkeye/Helpline/internal/domain"
)

func (ctl *SignalWSController) handleRelaySignal(st *connState, data []byte) {
	var p domain.SignalRequest
	if err := json.Unmarshal(data, &p); err != nil {
		st.logger.Warn().Err(err).Msg("bad signal payload")
		return
	}
	if st.pid == "" {
		st.logger.Debug().Msg("signal before join")
		return
	}
	ctl.Lane.Relay.Signal(st.pid, p)
}

func (ctl *SignalWSController) handleRelayMessage(st *connState, data []byte) {
	var p domain.MessageRequest
	if err := json.Unmarshal(data, &p); err != nil {
		st.logger.Warn().Err(err).Msg("bad message payload")
		return
	}
	if st.pid == "" {
		st.logger.Debug().Msg("message before join")
		return
	}
	ctl.Lane.Relay.Message(st.pid, p)
}
