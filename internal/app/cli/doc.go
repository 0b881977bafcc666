// Package cli provides the interactive Melodica account console.
//
// It wires configuration, the local SQLite storage and the auth service into
// a REPL. Typical flow: resume any persisted session, then execute user
// commands until exit.
//
// Key features:
//   - register / login / logout
//   - profile view and edits (email, username, picture)
//   - change password, forgot-password reset
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
