package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/desertthunder/vinyl/internal/server"
	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/urfave/cli/v3"
)

const authTimeout = 2 * time.Minute

// AuthLogin performs the PKCE authorization flow.
//
// Starts a local HTTP server on the configured callback address, opens the
// browser at the authorize URL, waits for the redirect, and exchanges the
// code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	state := shared.GenerateState()

	authURL, err := r.flow.AuthURL(state)
	if err != nil {
		return fmt.Errorf("failed to build authorize URL: %w", err)
	}

	callbackPath := "/callback"
	if u, err := url.Parse(r.config.Credentials.Spotify.RedirectURI); err == nil && u.Path != "" {
		callbackPath = u.Path
	}

	handler := server.NewCallbackHandler(callbackPath, state)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	srv := server.New(serverAddr, handler, server.Logging(r.logger))

	r.logger.Infof("starting callback server at %v", serverAddr)
	serverErrors := srv.Start()

	// Release the listener on every exit, including timeout and cancellation.
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	if err := r.flow.Exchange(ctx, result.Code); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: vinyl player status\n")

	return nil
}

// AuthLogout removes every stored credential key.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	if err := r.flow.Logout(); err != nil {
		return err
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthStatus reports whether a session exists and when its token expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	authenticated, expiresAt, err := r.flow.Status()
	if err != nil {
		return err
	}

	if !authenticated {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run: vinyl auth login\n")
		return nil
	}

	r.writePlain("✓ Authenticated\n")
	if !expiresAt.IsZero() {
		if time.Now().After(expiresAt) {
			r.writePlain("Token expired %s (will refresh on next use)\n", expiresAt.Format(time.RFC1123))
		} else {
			r.writePlain("Token valid until %s\n", expiresAt.Format(time.RFC1123))
		}
	}

	return nil
}
