// Saved-track state, user profile, and playlist membership operations.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/vinyl/internal/shared"
)

// playlistDescription marks playlists created by this application.
const playlistDescription = "Added via Spotify Vinyl Player"

// TrackURI formats the Spotify URI for a track id.
func TrackURI(trackID string) string {
	return "spotify:track:" + trackID
}

// SavedStateForTracks reports, per input id and in input order, whether the
// track is saved in the user's library.
func (c *Client) SavedStateForTracks(ctx context.Context, trackIDs []string) ([]bool, error) {
	if len(trackIDs) == 0 {
		return []bool{}, nil
	}

	var saved []bool
	path := "/me/tracks/contains?ids=" + url.QueryEscape(strings.Join(trackIDs, ","))
	if err := c.do(ctx, http.MethodGet, path, nil, &saved); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLibraryQuery, err)
	}

	return saved, nil
}

// SaveTracks adds the tracks to the user's library.
func (c *Client) SaveTracks(ctx context.Context, trackIDs []string) error {
	path := "/me/tracks?ids=" + url.QueryEscape(strings.Join(trackIDs, ","))
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// RemoveSavedTracks removes the tracks from the user's library.
func (c *Client) RemoveSavedTracks(ctx context.Context, trackIDs []string) error {
	path := "/me/tracks?ids=" + url.QueryEscape(strings.Join(trackIDs, ","))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CurrentUserID retrieves the authenticated user's id.
func (c *Client) CurrentUserID(ctx context.Context) (string, error) {
	var user struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// SimplePlaylist is the playlist shape returned by listing endpoints.
type SimplePlaylist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playlistPage struct {
	Items []SimplePlaylist `json:"items"`
}

// FindOrCreatePlaylist returns the id of the user's playlist whose name
// matches case-insensitively, walking the full listing. When no page
// matches, a private playlist is created and its id returned.
//
// A listing failure partway stops the scan and falls through to create;
// the remote may then hold a duplicate name, which the player tolerates.
func (c *Client) FindOrCreatePlaylist(ctx context.Context, name string) (string, error) {
	walker := c.walk("/me/playlists?limit=50")
	for walker.More() {
		var page playlistPage
		if err := walker.Next(ctx, &page); err != nil {
			break
		}
		for _, p := range page.Items {
			if strings.EqualFold(p.Name, name) {
				return p.ID, nil
			}
		}
	}

	userID, err := c.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}

	body := struct {
		Name        string `json:"name"`
		Public      bool   `json:"public"`
		Description string `json:"description"`
	}{Name: name, Public: false, Description: playlistDescription}

	var created SimplePlaylist
	path := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodPost, path, body, &created); err != nil {
		return "", fmt.Errorf("failed to create playlist: %w", err)
	}

	return created.ID, nil
}

type playlistTrackPage struct {
	Items []struct {
		Track struct {
			ID string `json:"id"`
		} `json:"track"`
	} `json:"items"`
}

// IsTrackInPlaylist reports whether the playlist already contains the track.
// Any HTTP failure during the walk reads as "not present".
func (c *Client) IsTrackInPlaylist(ctx context.Context, playlistID, trackID string) (bool, error) {
	path := fmt.Sprintf("/playlists/%s/tracks?fields=items(track(id)),next&limit=100", url.PathEscape(playlistID))
	walker := c.walk(path)
	for walker.More() {
		var page playlistTrackPage
		if err := walker.Next(ctx, &page); err != nil {
			return false, nil
		}
		for _, item := range page.Items {
			if item.Track.ID == trackID {
				return true, nil
			}
		}
	}
	return false, nil
}

// AddTrackToPlaylist appends the track to the playlist.
func (c *Client) AddTrackToPlaylist(ctx context.Context, playlistID, trackID string) error {
	body := struct {
		URIs []string `json:"uris"`
	}{URIs: []string{TrackURI(trackID)}}

	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("failed to add track to playlist: %w", err)
	}
	return nil
}

// StampPlaylist is the playlist that collects stamped tracks.
const StampPlaylist = "Vinyl Player"

// StampTrack files a track into the stamp playlist, creating the playlist on
// first use. Reports whether the track was newly added.
func (c *Client) StampTrack(ctx context.Context, trackID string) (bool, error) {
	playlistID, err := c.FindOrCreatePlaylist(ctx, StampPlaylist)
	if err != nil {
		return false, err
	}

	present, err := c.IsTrackInPlaylist(ctx, playlistID, trackID)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	if err := c.AddTrackToPlaylist(ctx, playlistID, trackID); err != nil {
		return false, err
	}
	return true, nil
}

// pageWalker follows server-issued cursors until next is null or absent.
// Cursor URLs are followed verbatim, never reconstructed.
type pageWalker struct {
	c   *Client
	url string
}

func (c *Client) walk(start string) *pageWalker {
	return &pageWalker{c: c, url: start}
}

// More reports whether another page is available.
func (w *pageWalker) More() bool {
	return w.url != ""
}

// Next fetches the current page into result and records the next cursor.
func (w *pageWalker) Next(ctx context.Context, result any) error {
	resp, err := w.c.request(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return err
	}
	if err := classify(resp); err != nil {
		return err
	}

	if err := decode(resp, result); err != nil {
		return err
	}

	var envelope struct {
		Next *string `json:"next"`
	}
	if err := decode(resp, &envelope); err != nil {
		return err
	}

	if envelope.Next != nil {
		w.url = *envelope.Next
	} else {
		w.url = ""
	}
	return nil
}
