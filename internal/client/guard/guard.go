// Package guard decides whether a protected view may be shown for the
// current session state. It is a pure decision function: no side effects,
// no caching, re-evaluated against a fresh snapshot on every use.
package guard

import (
	"github.com/mkalinins/commportal/internal/client/session"
	"github.com/mkalinins/commportal/internal/portal"
)

// Decision is the outcome of evaluating a guarded view.
type Decision int

const (
	// Render shows the guarded content.
	Render Decision = iota

	// ShowLoading shows a neutral indicator while the initial session
	// check is still running. No redirect happens in this state.
	ShowLoading

	// RedirectLogin sends the user to the login entry point, replacing
	// history so back-navigation cannot return to the guarded view.
	RedirectLogin

	// RedirectHome sends an authenticated but under-privileged user to the
	// application root, replacing history.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Evaluate applies the guard rules in order: loading, authentication, role.
// An empty required role gates on authentication only.
func Evaluate(st session.Snapshot, required portal.Role) Decision {
	if st.IsLoading {
		return ShowLoading
	}
	if !st.IsAuthenticated() {
		return RedirectLogin
	}
	if required != "" && !st.User.Role.AtLeast(required) {
		return RedirectHome
	}
	return Render
}
