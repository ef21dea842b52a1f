package signal

// handleEnd leaves the pool or room and closes the connection.
// A participant rejoins over a new connection.
func (ctl *SignalWSController) handleEnd(st *connState) {
	st.logger.Info().Msg("end")
	ctl.leave(st)
	st.done = true
	st.conn.Close()
}

func (ctl *SignalWSController) leave(st *connState) {
	if st.pid == "" {
		return
	}
	ctl.Lane.Relay.Leave(st.pid)
	st.pid = ""
}
