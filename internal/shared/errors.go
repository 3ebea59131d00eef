package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrMissingVerifier  = fmt.Errorf("no code verifier in store")
	ErrExchangeFailed   = fmt.Errorf("authorization code exchange failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrTokenRejected    = fmt.Errorf("access token rejected")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrRateLimited      = fmt.Errorf("rate limited")
	ErrUpstream         = fmt.Errorf("upstream service error")
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")
	ErrLibraryQuery     = fmt.Errorf("library query failed")
	ErrNoActiveDevice   = fmt.Errorf("no active playback device")
	ErrNoActiveTrack    = fmt.Errorf("nothing is currently playing")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
