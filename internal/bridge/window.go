package bridge

import "context"

// WindowAPI wraps the window.* host namespace.
type WindowAPI struct {
	c *Client
}

// BoolResult carries a single boolean payload.
type BoolResult struct {
	Result
	Value bool `json:"value"`
}

// Minimize minimizes the main window.
func (w *WindowAPI) Minimize(ctx context.Context) Result {
	var out Result
	if !w.c.call(ctx, "window.minimize", nil, &out) {
		return unavailable("window")
	}
	return out
}

// Maximize toggles window maximization.
func (w *WindowAPI) Maximize(ctx context.Context) Result {
	var out Result
	if !w.c.call(ctx, "window.maximize", nil, &out) {
		return unavailable("window")
	}
	return out
}

// Close closes the main window.
func (w *WindowAPI) Close(ctx context.Context) Result {
	var out Result
	if !w.c.call(ctx, "window.close", nil, &out) {
		return unavailable("window")
	}
	return out
}

// IsMaximized reports whether the window is maximized.
func (w *WindowAPI) IsMaximized(ctx context.Context) BoolResult {
	var out BoolResult
	if !w.c.call(ctx, "window.isMaximized", nil, &out) {
		return BoolResult{Result: unavailable("window")}
	}
	return out
}

// OpenSettings opens the host settings surface.
func (w *WindowAPI) OpenSettings(ctx context.Context) Result {
	var out Result
	if !w.c.call(ctx, "window.openSettings", nil, &out) {
		return unavailable("window")
	}
	return out
}

// PushSettings pushes a changed settings section to the host.
func (w *WindowAPI) PushSettings(ctx context.Context, section string, values map[string]any) Result {
	var out Result
	params := struct {
		Section string         `json:"section"`
		Values  map[string]any `json:"values"`
	}{Section: section, Values: values}
	if !w.c.call(ctx, "window.pushSettings", params, &out) {
		return unavailable("window")
	}
	return out
}
