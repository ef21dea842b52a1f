package core

// Frame is a raw encoded envelope.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues a frame without blocking.
	TrySend(Frame) error
	// Close flushes queued frames and terminates the transport.
	Close()
}
