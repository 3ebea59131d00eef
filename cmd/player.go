package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/desertthunder/vinyl/internal/spotify"
	"github.com/urfave/cli/v3"
)

// PlayerStatus prints the current playback snapshot.
func (r *Runner) PlayerStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	state, err := r.client.CurrentPlayback(ctx)
	if err != nil {
		return err
	}

	if state == nil {
		return r.writePlain("Nothing playing (no active device)\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, cmd.Bool("pretty"))
	}

	symbol := "⏸"
	if state.IsPlaying {
		symbol = "▶"
	}

	if state.Item == nil {
		return r.writePlain("%s (no track)\n", symbol)
	}

	artists := make([]string, 0, len(state.Item.Artists))
	for _, a := range state.Item.Artists {
		artists = append(artists, a.Name)
	}

	r.writePlain("%s %s - %s\n", symbol, strings.Join(artists, ", "), state.Item.Name)
	if state.Item.Album.Name != "" {
		r.writePlain("  Album: %s\n", state.Item.Album.Name)
	}
	r.writePlain("  Position: %s / %s\n", fmtMS(state.ProgressMS), fmtMS(state.Item.DurationMS))
	r.writePlain("  Shuffle: %t  Repeat: %s\n", state.ShuffleState, state.RepeatState)

	return nil
}

// PlayerPlay resumes playback.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, "▶ Playing", func(ctx context.Context) error {
		return r.client.Play(ctx)
	})
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, "⏸ Paused", func(ctx context.Context) error {
		return r.client.Pause(ctx)
	})
}

// PlayerNext skips to the next track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, "⏭ Skipped", func(ctx context.Context) error {
		return r.client.SkipNext(ctx)
	})
}

// PlayerPrevious returns to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, "⏮ Skipped back", func(ctx context.Context) error {
		return r.client.SkipPrevious(ctx)
	})
}

// PlayerSeek seeks to a position in the current track.
func (r *Runner) PlayerSeek(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("position")
	if raw == "" {
		return fmt.Errorf("%w: position in milliseconds", shared.ErrMissingArgument)
	}

	position, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: position %q is not a number", shared.ErrInvalidArgument, raw)
	}

	return r.transport(ctx, "→ Position updated", func(ctx context.Context) error {
		return r.client.Seek(ctx, position)
	})
}

// PlayerShuffle turns shuffle on or off.
func (r *Runner) PlayerShuffle(ctx context.Context, cmd *cli.Command) error {
	var state bool
	switch raw := strings.ToLower(cmd.StringArg("state")); raw {
	case "on", "true":
		state = true
	case "off", "false":
		state = false
	default:
		return fmt.Errorf("%w: shuffle state %q (want on or off)", shared.ErrInvalidArgument, raw)
	}

	return r.transport(ctx, fmt.Sprintf("⇄ Shuffle %s", cmd.StringArg("state")), func(ctx context.Context) error {
		return r.client.SetShuffle(ctx, state)
	})
}

// PlayerRepeat sets the repeat mode.
func (r *Runner) PlayerRepeat(ctx context.Context, cmd *cli.Command) error {
	mode := spotify.RepeatMode(strings.ToLower(cmd.StringArg("mode")))
	if !mode.Valid() {
		return fmt.Errorf("%w: repeat mode %q (want off, track, or context)", shared.ErrInvalidArgument, cmd.StringArg("mode"))
	}

	return r.transport(ctx, fmt.Sprintf("↻ Repeat %s", mode), func(ctx context.Context) error {
		return r.client.SetRepeat(ctx, mode)
	})
}

// PlayerVolume sets the device volume.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("percent")
	if raw == "" {
		return fmt.Errorf("%w: volume percent", shared.ErrMissingArgument)
	}

	percent, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: volume %q is not a number", shared.ErrInvalidArgument, raw)
	}

	return r.transport(ctx, "♪ Volume updated", func(ctx context.Context) error {
		return r.client.SetVolume(ctx, percent)
	})
}

// transport runs a playback command and prints a confirmation.
func (r *Runner) transport(ctx context.Context, confirmation string, op func(context.Context) error) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	if err := op(ctx); err != nil {
		return err
	}

	return r.writePlain("%s\n", confirmation)
}

// fmtMS renders a millisecond offset as m:ss.
func fmtMS(ms int) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
