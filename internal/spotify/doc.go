// Package spotify implements the authenticated Web API client.
//
// # Request execution
//
// [Client] obtains a bearer token from its [TokenSource] per request, rates
// requests with [rate.Limiter], and classifies HTTP outcomes into the
// sentinel errors of the shared package. A 401 is retried once after a
// forced refresh; a 429 is retried once after honouring Retry-After. 5xx
// responses are not retried.
//
// # Operations
//
// Playback operations (player state, transport, shuffle/repeat/volume) live
// in playback.go; library operations (saved tracks, user profile, playlist
// find-or-create and membership) in library.go. Paginated listings follow
// server-issued cursors verbatim via [pageWalker] until next is absent.
package spotify
