package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mkalinins/commportal/internal/client/api"
	"github.com/mkalinins/commportal/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs the first authentication factor.
// When the backend requires a second factor, the user is asked for the SMS
// code right away; a failed code can be retried later with the verify
// command. Error messages stay generic: no detail about which field was
// wrong is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, email, password); err != nil {
		printLoginError(err)
		return err
	}

	if a.store.Snapshot().Requires2FA {
		printlnFn("A verification code was sent to your phone via SMS.")
		return a.Verify(ctx)
	}

	printlnFn("Login successful!")
	return nil
}

// Verify prompts for the 6-digit SMS code and finalizes the session. On a
// wrong code the session stays on the verification step and the command can
// simply be run again.
func (a *App) Verify(ctx context.Context) error {
	if !a.store.Snapshot().Requires2FA {
		printlnFn("No verification pending. Use 'login' first.")
		return nil
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.Verify2FA(ctx, code); err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			printlnFn("Verification already in progress.")
		case errors.Is(err, api.ErrUnavailable):
			printlnFn("Server unavailable. Try again later.")
		default:
			printlnFn("Invalid 2FA code. Run 'verify' to try again.")
		}
		return err
	}

	printlnFn("Login successful. Welcome back!")
	return nil
}

// Logout clears the session. It always succeeds locally; the backend is
// notified in the background.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current principal.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.Snapshot()
	if !st.IsAuthenticated() {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s", st.User.Name, st.User.Email, st.User.Role))
	if st.User.Phone != "" {
		printlnFn("Phone: " + st.User.Phone)
	}
	return nil
}

func printLoginError(err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		printlnFn("A login is already in progress.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable. Try again later.")
	default:
		printlnFn("Login failed: invalid credentials.")
	}
}
