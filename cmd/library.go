package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryLike saves a track to the user's library. With no argument, the
// currently playing track is used.
func (r *Runner) LibraryLike(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	trackID, name, err := r.resolveTrack(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.client.SaveTracks(ctx, []string{trackID}); err != nil {
		return err
	}

	return r.writePlain("♥ Saved %s\n", name)
}

// LibraryUnlike removes a track from the user's library. With no argument,
// the currently playing track is used.
func (r *Runner) LibraryUnlike(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	trackID, name, err := r.resolveTrack(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.client.RemoveSavedTracks(ctx, []string{trackID}); err != nil {
		return err
	}

	return r.writePlain("♡ Removed %s\n", name)
}

// LibraryLiked reports the saved state for the given track ids, one line per
// id in input order.
func (r *Runner) LibraryLiked(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	ids := cmd.StringArgs("ids")
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one track id", shared.ErrMissingArgument)
	}

	saved, err := r.client.SavedStateForTracks(ctx, ids)
	if err != nil {
		return err
	}

	for i, id := range ids {
		mark := "♡"
		if i < len(saved) && saved[i] {
			mark = "♥"
		}
		r.writePlain("%s %s\n", mark, id)
	}

	return nil
}

// LibraryStamp files the currently playing track into the Vinyl Player
// playlist, creating the playlist on first use.
func (r *Runner) LibraryStamp(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureClient(); err != nil {
		return err
	}

	trackID, name, err := r.resolveTrack(ctx, "")
	if err != nil {
		return err
	}

	added, err := r.client.StampTrack(ctx, trackID)
	if err != nil {
		return err
	}

	if !added {
		return r.writePlain("✓ %s is already stamped\n", name)
	}
	return r.writePlain("✓ Stamped %s\n", name)
}

// resolveTrack returns the explicit track id when given, otherwise the id of
// the currently playing track.
func (r *Runner) resolveTrack(ctx context.Context, explicit string) (id, name string, err error) {
	if explicit != "" {
		return explicit, explicit, nil
	}

	state, err := r.client.CurrentPlayback(ctx)
	if err != nil {
		return "", "", err
	}
	if state == nil || state.Item == nil {
		return "", "", shared.ErrNoActiveTrack
	}

	artists := make([]string, 0, len(state.Item.Artists))
	for _, a := range state.Item.Artists {
		artists = append(artists, a.Name)
	}

	label := state.Item.Name
	if len(artists) > 0 {
		label = strings.Join(artists, ", ") + " - " + label
	}
	return state.Item.ID, label, nil
}
