// Package bridgetest provides an in-memory Transport for exercising stores
// and bridge namespaces without a host process.
package bridgetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/veilbrowser/veil/internal/bridge"
)

// Call records one request seen by the fake transport.
type Call struct {
	Method string
	Params json.RawMessage
}

// FakeTransport scripts host responses per method and records every call.
type FakeTransport struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
	handler   bridge.EventHandler
	closed    bool
}

type response struct {
	payload json.RawMessage
	err     error
}

// NewFakeTransport creates an empty fake. Methods without a scripted
// response answer {"success":true}.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{responses: make(map[string]response)}
}

// Respond scripts a response payload for a method. v is marshalled once.
func (f *FakeTransport) Respond(method string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.responses[method] = response{payload: b}
	f.mu.Unlock()
}

// Fail scripts a transport-level failure for a method.
func (f *FakeTransport) Fail(method string, err error) {
	f.mu.Lock()
	f.responses[method] = response{err: err}
	f.mu.Unlock()
}

// Call implements bridge.Transport.
func (f *FakeTransport) Call(_ context.Context, method string, params any) (json.RawMessage, error) {
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, bridge.ErrTransportClosed
	}
	f.calls = append(f.calls, Call{Method: method, Params: raw})

	if r, ok := f.responses[method]; ok {
		return r.payload, r.err
	}
	return json.RawMessage(`{"success":true}`), nil
}

// Subscribe implements bridge.Transport.
func (f *FakeTransport) Subscribe(handler bridge.EventHandler) {
	f.mu.Lock()
	f.handler = handler
	f.mu.Unlock()
}

// RemoveAllListeners implements bridge.Transport.
func (f *FakeTransport) RemoveAllListeners() {
	f.mu.Lock()
	f.handler = nil
	f.mu.Unlock()
}

// Close implements bridge.Transport.
func (f *FakeTransport) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Push synthesizes a host event through the installed handler.
func (f *FakeTransport) Push(event string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(event, b)
	}
}

// HasHandler reports whether an event handler is installed.
func (f *FakeTransport) HasHandler() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler != nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many calls hit a method ("" counts everything).
func (f *FakeTransport) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if method == "" {
		return len(f.calls)
	}
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}
