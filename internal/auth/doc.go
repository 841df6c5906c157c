// Package auth implements local username/password authentication with
// server-side sessions.
//
// Passwords are hashed with bcrypt. Session state lives in a SQLite-backed
// scs store; the cookie carries only the opaque session token. The
// CurrentUser middleware populates the request context with the logged-in
// user before every handler, and RequireAuth guards mutation routes.
package auth
