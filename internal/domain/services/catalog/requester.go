package catalog

// Requester identifies the caller of an engine operation. It is passed
// explicitly into every call instead of being read from ambient state, so
// the visibility and permission rules are testable in isolation.
type Requester struct {
	// Subject is the caller identity (JWT sub), empty for anonymous.
	Subject string

	// Admin grants full catalog visibility and curation rights.
	Admin bool
}

// Anonymous is the requester for unauthenticated public calls.
var Anonymous = Requester{}
