package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// wsRequest is the wire shape of a request to the host.
type wsRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// wsMessage is the wire shape of anything the host sends: a response to a
// pending request (ID set) or a pushed event (Event set).
type wsMessage struct {
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Event  string          `json:"event,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// WSTransport is the production Transport: a single websocket connection to
// the host process with one writer, one reader, and a pending-call table.
type WSTransport struct {
	conn *websocket.Conn
	log  zerolog.Logger

	writeMu sync.Mutex // websocket allows one concurrent writer

	mu      sync.Mutex
	pending map[string]chan wsMessage
	handler EventHandler
	closed  bool
}

// DialHost connects to the host process bridge endpoint.
func DialHost(ctx context.Context, endpoint string, log zerolog.Logger) (*WSTransport, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial host at %s: %w", endpoint, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	t := &WSTransport{
		conn:    conn,
		log:     log.With().Str("component", "bridge").Logger(),
		pending: make(map[string]chan wsMessage),
	}
	go t.readLoop()
	return t, nil
}

// Call implements Transport.
func (t *WSTransport) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
		}
		raw = b
	}

	id := uuid.NewString()
	ch := make(chan wsMessage, 1)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrTransportClosed
	}
	t.pending[id] = ch
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	req := wsRequest{ID: id, Method: method, Params: raw}
	t.writeMu.Lock()
	err := t.conn.WriteJSON(req)
	t.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}

	select {
	case msg, ok := <-ch:
		if !ok {
			return nil, ErrTransportClosed
		}
		if msg.Error != "" {
			return nil, fmt.Errorf("host rejected %s: %s", method, msg.Error)
		}
		return msg.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Subscribe implements Transport.
func (t *WSTransport) Subscribe(handler EventHandler) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

// RemoveAllListeners implements Transport.
func (t *WSTransport) RemoveAllListeners() {
	t.mu.Lock()
	t.handler = nil
	t.mu.Unlock()
}

// Close implements Transport.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	for id, ch := range t.pending {
		close(ch)
		delete(t.pending, id)
	}
	t.mu.Unlock()
	return t.conn.Close()
}

// readLoop demultiplexes host messages into pending calls and the event
// handler. It exits when the connection drops.
func (t *WSTransport) readLoop() {
	for {
		var msg wsMessage
		if err := t.conn.ReadJSON(&msg); err != nil {
			t.log.Debug().Err(err).Msg("bridge read loop terminated")
			t.failPending()
			return
		}

		if msg.Event != "" {
			t.mu.Lock()
			handler := t.handler
			t.mu.Unlock()
			if handler != nil {
				handler(msg.Event, msg.Data)
			}
			continue
		}

		t.mu.Lock()
		ch, ok := t.pending[msg.ID]
		t.mu.Unlock()
		if ok {
			ch <- msg
		} else {
			t.log.Debug().Str("id", msg.ID).Msg("response for unknown request dropped")
		}
	}
}

// failPending unblocks callers waiting on a dead connection.
func (t *WSTransport) failPending() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, ch := range t.pending {
		close(ch)
		delete(t.pending, id)
	}
}
