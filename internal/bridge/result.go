// Package bridge is the client-side façade over the host process. Every UI
// action funnels through a typed method here; methods return a uniform
// Result instead of Go errors so expected failures never propagate as
// exceptions. The bridge holds no state beyond its transport.
package bridge

import "fmt"

// Result is the uniform outcome shape of every host call:
// success plus an optional human-readable error string. There are no
// structured error codes; the UI displays Error verbatim.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Ok returns a successful result.
func Ok() Result {
	return Result{Success: true}
}

// Errf returns a failed result with a formatted message.
func Errf(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// Failed reports whether the result carries a failure.
func (r Result) Failed() bool {
	return !r.Success
}

// unavailable is the uniform result for a missing or broken transport,
// mirroring the "X API not available" convention.
func unavailable(namespace string) Result {
	return Result{Error: namespace + " API not available"}
}
