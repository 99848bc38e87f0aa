// Package auth provides credential verification for the admin login.
//
// Two providers exist, matching the two storage backends: LocalProvider
// authenticates against the users table with Argon2id password hashing,
// StaticProvider against the credential pair from the configuration when
// no database is in play. Both satisfy the Provider interface the login
// handler works with.
package auth
