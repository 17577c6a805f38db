package entity

// Capability is what a page or embedded dApp is asking to do.
type Capability string

const (
	// CapabilityConnect lets a dApp see the wallet address.
	CapabilityConnect Capability = "connect"

	// CapabilitySign lets a dApp request message signatures.
	CapabilitySign Capability = "sign"

	// CapabilityTransact lets a dApp request on-chain transactions.
	CapabilityTransact Capability = "transact"

	// CapabilityNotification is a regular web notification permission.
	CapabilityNotification Capability = "notification"

	// CapabilityGeolocation is a regular geolocation permission.
	CapabilityGeolocation Capability = "geolocation"

	// CapabilityClipboard is clipboard read access.
	CapabilityClipboard Capability = "clipboard"
)

// PermissionDecision is the user's answer to a permission request.
type PermissionDecision string

const (
	PermissionGranted PermissionDecision = "granted"
	PermissionDenied  PermissionDecision = "denied"
)

// PermissionRequest is a host-pushed request awaiting a user decision.
// Origin is passed by value; stores never share a mutable reference to it.
type PermissionRequest struct {
	ID         string     `json:"id"`
	Origin     string     `json:"origin"`
	Capability Capability `json:"capability"`
}
