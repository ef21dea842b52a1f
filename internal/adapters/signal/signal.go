package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Helpline/internal/app"
	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrBackpressure = errors.New("backpressure")

// Options tune the per-socket pumps.
type Options struct {
	ReadLimit    int64
	PingPeriod   time.Duration
	WriteTimeout time.Duration
	SendBuffer   int
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:    256 << 10,
		PingPeriod:   54 * time.Second,
		WriteTimeout: 5 * time.Second,
		SendBuffer:   32,
	}
}

func (o Options) pongWait() time.Duration { return o.PingPeriod * 10 / 9 }

// SignalWSController serves one matching domain over WebSocket.
type SignalWSController struct {
	Lane *app.Lane
	Opts Options
}

func NewSignalWSController(lane *app.Lane, opts Options) *SignalWSController {
	def := DefaultOptions()
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = def.ReadLimit
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = def.PingPeriod
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = def.WriteTimeout
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = def.SendBuffer
	}
	return &SignalWSController{Lane: lane, Opts: opts}
}

// WsSignalConn implements core.SignalConnection. Only the write pump
// touches the socket for writing.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return domain.ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

// Close stops accepting frames. The write pump flushes what is queued,
// sends a close frame and closes the socket.
func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// connState is owned by the read pump goroutine.
type connState struct {
	conn   *WsSignalConn
	pid    domain.ParticipantID
	done   bool
	logger zerolog.Logger
	// base is logger without the pid field.
	base   zerolog.Logger
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := c.GetString("client_token")
	logger := log.With().
		Str("module", "signal").
		Str("domain", string(ctl.Lane.Kind())).
		Str("sid", sid).
		Logger()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}
	logger.Info().Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Opts.SendBuffer),
	}
	st := &connState{conn: conn, logger: logger, base: logger}

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, st)
	go ctl.readPump(ctx, cancel, st)
}
