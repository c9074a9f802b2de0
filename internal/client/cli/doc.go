// Package cli provides the interactive Plated terminal client.
//
// It wires configuration, the local session database, the API client and
// the registration and profile flows behind a small REPL. Screens of the
// web client map to routes: the sign-in redirect is pasted into
// "register", after which the profile screen is reached with "profile".
// App implements session.Navigator, so a rejected session anywhere sends
// the user back to the sign-in instructions.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
