package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/desertthunder/vinyl/internal/store"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// Flow performs the PKCE authorization code flow against the Spotify
// accounts service and persists the resulting credential record.
//
// The client is a public OAuth client: no secret, client_id in the form body.
type Flow struct {
	conf   *oauth2.Config
	store  store.Store
	client *http.Client
}

// NewFlow creates a Flow for the given application credentials, persisting
// tokens in st. A nil client falls back to [http.DefaultClient].
func NewFlow(cfg shared.SpotifyConfig, st store.Store, client *http.Client) (*Flow, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id must be set", shared.ErrMissingCredentials)
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%w: redirect_uri must be set", shared.ErrMissingCredentials)
	}

	conf := &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Scopes:      cfg.ScopeList(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   spotifyAuthURL,
			TokenURL:  spotifyTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &Flow{conf: conf, store: st, client: client}, nil
}

// AuthURL generates a fresh code verifier, persists it, and returns the
// authorize URL carrying the derived S256 challenge.
//
// The caller navigates the user agent there and feeds the redirect code back
// through [Flow.Exchange].
func (f *Flow) AuthURL(state string) (string, error) {
	verifier, err := NewVerifier()
	if err != nil {
		return "", err
	}

	if err := f.store.Put(store.KeyCodeVerifier, verifier); err != nil {
		return "", fmt.Errorf("failed to persist code verifier: %w", err)
	}

	return f.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)), nil
}

// Exchange redeems an authorization code for tokens and stores them.
//
// The pending code verifier is removed once the exchange succeeds, so a
// verifier is present iff an authorize flow is in progress.
func (f *Flow) Exchange(ctx context.Context, code string) error {
	verifier, ok, err := f.store.Get(store.KeyCodeVerifier)
	if err != nil {
		return fmt.Errorf("failed to read code verifier: %w", err)
	}
	if !ok {
		return shared.ErrMissingVerifier
	}

	tok, err := f.conf.Exchange(f.httpContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrExchangeFailed, err)
	}

	if err := f.saveToken(tok); err != nil {
		return err
	}

	if err := f.store.Delete(store.KeyCodeVerifier); err != nil {
		return fmt.Errorf("failed to remove code verifier: %w", err)
	}

	return nil
}

// Refresh redeems the stored refresh token for a new access token, returning
// the new token. The stored refresh token is overwritten only when the
// response supplies a new one.
func (f *Flow) Refresh(ctx context.Context) (string, error) {
	refresh, ok, err := f.store.Get(store.KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	if !ok || refresh == "" {
		return "", shared.ErrNoRefreshToken
	}

	src := f.conf.TokenSource(f.httpContext(ctx), &oauth2.Token{RefreshToken: refresh})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if err := f.saveToken(tok); err != nil {
		return "", err
	}

	return tok.AccessToken, nil
}

// Logout removes every credential key from the store.
func (f *Flow) Logout() error {
	return store.Clear(f.store)
}

// Status reports whether a credential record exists and when it expires.
func (f *Flow) Status() (authenticated bool, expiresAt time.Time, err error) {
	_, ok, err := f.store.Get(store.KeyAccessToken)
	if err != nil || !ok {
		return false, time.Time{}, err
	}

	ms, ok, err := store.ExpiresAt(f.store)
	if err != nil || !ok {
		return true, time.Time{}, err
	}
	return true, time.UnixMilli(ms), nil
}

// saveToken persists the access token and expiry atomically, plus the
// refresh token when one is present.
func (f *Flow) saveToken(tok *oauth2.Token) error {
	if err := store.SetTokens(f.store, tok.AccessToken, tok.Expiry.UnixMilli()); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}

	if tok.RefreshToken != "" {
		if err := f.store.Put(store.KeyRefreshToken, tok.RefreshToken); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	return nil
}

// httpContext routes oauth2's token endpoint calls through the injected
// HTTP client so timeouts apply.
func (f *Flow) httpContext(ctx context.Context) context.Context {
	if f.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, f.client)
}
