package bridge

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Client groups the host capability namespaces. It is safe for concurrent
// use from multiple stores: it carries no mutable state of its own.
type Client struct {
	Wallet    *WalletAPI
	Bookmarks *BookmarksAPI
	History   *HistoryAPI
	Browser   *BrowserAPI
	Window    *WindowAPI
	DApp      *DAppAPI
	Events    *EventsAPI

	transport Transport
	log       zerolog.Logger
}

// New creates a bridge client over the given transport.
func New(transport Transport, log zerolog.Logger) *Client {
	c := &Client{
		transport: transport,
		log:       log.With().Str("component", "bridge").Logger(),
	}
	c.Wallet = &WalletAPI{c: c}
	c.Bookmarks = &BookmarksAPI{c: c}
	c.History = &HistoryAPI{c: c}
	c.Browser = &BrowserAPI{c: c}
	c.Window = &WindowAPI{c: c}
	c.DApp = &DAppAPI{c: c}
	c.Events = &EventsAPI{c: c}
	return c
}

// Close shuts down the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// call performs one host round-trip and unmarshals the result payload into
// out. It returns false on transport failure; host-reported failures land
// in out's embedded Result instead.
func (c *Client) call(ctx context.Context, method string, params, out any) bool {
	raw, err := c.transport.Call(ctx, method, params)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Msg("bridge call failed")
		return false
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.log.Debug().Err(err).Str("method", method).Msg("bridge response malformed")
			return false
		}
	}
	return true
}
