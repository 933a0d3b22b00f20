// Package api contains the transport layer of the portal client: the
// Client interface, its production HTTP implementation, and the sentinel
// errors used to classify failures.
package api
