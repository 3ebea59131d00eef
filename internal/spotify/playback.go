// Playback state reads and transport controls for the active device.
//
// Response types follow https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/desertthunder/vinyl/internal/shared"
)

// RepeatMode is the player repeat setting.
type RepeatMode string

const (
	RepeatOff     RepeatMode = "off"
	RepeatTrack   RepeatMode = "track"
	RepeatContext RepeatMode = "context"
)

// Valid reports whether m is one of the three recognized modes.
func (m RepeatMode) Valid() bool {
	return m == RepeatOff || m == RepeatTrack || m == RepeatContext
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a track artist.
type Artist struct {
	Name string `json:"name"`
}

// Album represents a track's album with its cover art.
type Album struct {
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

// Track represents the currently playing track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
}

// PlaybackContext identifies the collection being played.
type PlaybackContext struct {
	URI string `json:"uri"`
}

// PlaybackState is a point-in-time snapshot of the remote player.
type PlaybackState struct {
	IsPlaying    bool             `json:"is_playing"`
	Item         *Track           `json:"item"`
	ProgressMS   int              `json:"progress_ms"`
	ShuffleState bool             `json:"shuffle_state"`
	RepeatState  RepeatMode       `json:"repeat_state"`
	Context      *PlaybackContext `json:"context"`
}

// CurrentPlayback retrieves the player snapshot. Returns (nil, nil) when no
// device is active (204 or 404): that is an idle state, not an error.
func (c *Client) CurrentPlayback(ctx context.Context) (*PlaybackState, error) {
	resp, err := c.request(ctx, http.MethodGet, "/me/player", nil)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusNoContent || resp.status == http.StatusNotFound {
		return nil, nil
	}

	if err := classify(resp); err != nil {
		return nil, err
	}

	var state PlaybackState
	if err := decode(resp, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Play resumes playback on the active device.
func (c *Client) Play(ctx context.Context) error {
	return c.transport(ctx, http.MethodPut, "/me/player/play")
}

// Pause pauses playback on the active device.
func (c *Client) Pause(ctx context.Context) error {
	return c.transport(ctx, http.MethodPut, "/me/player/pause")
}

// SkipNext advances to the next track in the queue.
func (c *Client) SkipNext(ctx context.Context) error {
	return c.transport(ctx, http.MethodPost, "/me/player/next")
}

// SkipPrevious returns to the previous track.
func (c *Client) SkipPrevious(ctx context.Context) error {
	return c.transport(ctx, http.MethodPost, "/me/player/previous")
}

// Seek moves playback to positionMS milliseconds, floored and clamped to >= 0.
func (c *Client) Seek(ctx context.Context, positionMS float64) error {
	pos := int(math.Floor(positionMS))
	if pos < 0 {
		pos = 0
	}
	return c.transport(ctx, http.MethodPut, fmt.Sprintf("/me/player/seek?position_ms=%d", pos))
}

// SetShuffle toggles shuffle on the active device.
func (c *Client) SetShuffle(ctx context.Context, state bool) error {
	return c.transport(ctx, http.MethodPut, fmt.Sprintf("/me/player/shuffle?state=%t", state))
}

// SetRepeat sets the repeat mode.
func (c *Client) SetRepeat(ctx context.Context, mode RepeatMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: repeat mode %q", shared.ErrInvalidArgument, mode)
	}
	return c.transport(ctx, http.MethodPut, fmt.Sprintf("/me/player/repeat?state=%s", mode))
}

// SetVolume sets the device volume, rounded and clamped to [0, 100].
func (c *Client) SetVolume(ctx context.Context, percent float64) error {
	vol := int(math.Round(percent))
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}
	return c.transport(ctx, http.MethodPut, fmt.Sprintf("/me/player/volume?volume_percent=%d", vol))
}

// transport issues a bodyless transport command. A 404 means Spotify found
// no device to act on and surfaces as [shared.ErrNoActiveDevice] rather than
// passing silently.
func (c *Client) transport(ctx context.Context, method, path string) error {
	resp, err := c.request(ctx, method, path, nil)
	if err != nil {
		return err
	}

	if resp.status == http.StatusNotFound {
		return shared.ErrNoActiveDevice
	}

	return classify(resp)
}
