// Package cli provides the interactive community-portal terminal client.
//
// It wires configuration, durable token storage, the backend API client,
// and the session store into a REPL. Protected views (home bulletin, chat,
// board section, admin documents) are gated through the route guard before
// any content is fetched or shown.
//
// Typical flow: the startup session check runs first, then the user logs
// in with email and password, confirms the SMS code, and navigates views
// by command. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli
