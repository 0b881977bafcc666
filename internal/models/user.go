// Package models defines the data records persisted by the account subsystem.
package models

// User is a single account row in the local database.
//
// PasswordHash is always the salted SHA-256 digest of the password last set;
// the plaintext never reaches storage. Salt is regenerated on every password
// change and never reused.
type User struct {
	// ID is assigned by the store on creation and immutable afterwards.
	ID int64

	// Username is 1+ characters of letters, digits, spaces and dashes.
	Username string

	// Email is unique across all records and is the authentication lookup key.
	Email string

	// PasswordHash is opaque to everything above the auth service.
	PasswordHash string

	// Salt is the random per-record salt the hash was computed with.
	Salt string
}
