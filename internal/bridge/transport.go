package bridge

import (
	"context"
	"encoding/json"
	"errors"
)

// EventHandler receives host-pushed events demultiplexed from the
// transport. Payload layout depends on the event name.
type EventHandler func(event string, payload json.RawMessage)

// Transport moves requests to the host process and pushes host events back.
// Delivery is at-most-once; there is no retry policy at this layer and no
// timeout beyond what the caller's context imposes.
type Transport interface {
	// Call performs one request/response round-trip. The returned payload
	// is the host's result object; an error means the transport itself
	// failed (connection down, marshalling), not a host-reported failure.
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)

	// Subscribe installs the single event handler. Installing again
	// replaces the previous handler.
	Subscribe(handler EventHandler)

	// RemoveAllListeners drops the event handler. Per-event disposal is
	// not supported; teardown is whole-layer only.
	RemoveAllListeners()

	// Close shuts the transport down.
	Close() error
}

// ErrTransportClosed is returned by Call after Close.
var ErrTransportClosed = errors.New("bridge: transport closed")
