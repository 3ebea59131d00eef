// Package auth implements the Spotify authorization code flow with PKCE and
// the credential lifecycle built on top of it.
//
// # Flow
//
// [Flow] covers the three wire operations: building the authorize URL (which
// persists a fresh code verifier), exchanging the callback code for tokens,
// and redeeming the refresh token. Token persistence goes through a
// [store.Store] so the session survives restarts.
//
// # Gate
//
// [Gate] is the single entry point the API client uses to obtain a bearer
// token. It refreshes lazily when the stored token is absent or past its
// expiry, and collapses concurrent refreshes into one network call with
// [singleflight.Group].
package auth
