package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Helpline/internal/domain"
	"github.com/gorilla/websocket"
)

func (ctl *SignalWSController) writePump(ctx context.Context, st *connState) {
	c := st.conn
	ticker := time.NewTicker(ctl.Opts.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			st.logger.Debug().Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteTimeout)); err != nil {
				st.logger.Error().Err(err).Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				st.logger.Error().Err(err).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				st.logger.Debug().Err(err).Msg("writePump ping")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, st *connState) {
	c := st.conn
	defer func() {
		st.logger.Info().Msg("readPump closing")
		ctl.leave(st)
		c.Close()
		cancel()
	}()

	c.conn.SetReadLimit(ctl.Opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.pongWait()))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.pongWait()))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				st.logger.Warn().Err(err).Msg("readPump read error")
			}
			return
		}
		ctl.handleSignal(ctx, st, data)
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, st *connState, data []byte) {
	if st.done {
		return
	}
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		st.logger.Warn().Err(err).Msg("bad json")
		return
	}

	switch {
	case env.Type == domain.TypeJoin:
		ctl.handleJoin(ctx, st, data)
	case env.Type == domain.TypeEnd:
		ctl.handleEnd(st)
	case env.Type == domain.TypeSignal && ctl.Lane.Kind() == domain.KindVoice:
		ctl.handleRelaySignal(st, data)
	case env.Type == domain.TypeMessage && ctl.Lane.Kind() == domain.KindText:
		ctl.handleRelayMessage(st, data)
	default:
		st.logger.Warn().Str("type", env.Type).Msg("unknown signal")
	}
}
