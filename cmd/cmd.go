// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand scaffolds configuration and the credential database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the credential database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the authorization lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify using the PKCE code flow",
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored credential record",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show whether a session exists and when it expires",
				Action: r.AuthStatus,
			},
		},
	}
}

// playerCommand handles transport operations on the active device
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Control playback on the active device",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the current playback snapshot",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlayerStatus,
			},
			{
				Name:   "play",
				Usage:  "Resume playback",
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:    "next",
				Aliases: []string{"skip"},
				Usage:   "Skip to the next track",
				Action:  r.PlayerNext,
			},
			{
				Name:    "prev",
				Aliases: []string{"previous"},
				Usage:   "Skip to the previous track",
				Action:  r.PlayerPrevious,
			},
			{
				Name:  "seek",
				Usage: "Seek to a position in the current track (milliseconds)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "position"},
				},
				Action: r.PlayerSeek,
			},
			{
				Name:  "shuffle",
				Usage: "Turn shuffle on or off",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "state"},
				},
				Action: r.PlayerShuffle,
			},
			{
				Name:  "repeat",
				Usage: "Set repeat mode (off, track, context)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mode"},
				},
				Action: r.PlayerRepeat,
			},
			{
				Name:  "volume",
				Usage: "Set device volume (0-100)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "percent"},
				},
				Action: r.PlayerVolume,
			},
		},
	}
}

// libraryCommand handles saved tracks and the stamp playlist
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage saved tracks and the Vinyl Player playlist",
		Commands: []*cli.Command{
			{
				Name:  "like",
				Usage: "Save the current track (or an explicit track id)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LibraryLike,
			},
			{
				Name:  "unlike",
				Usage: "Remove the current track (or an explicit track id) from saved tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LibraryUnlike,
			},
			{
				Name:  "liked",
				Usage: "Check which of the given track ids are saved",
				Arguments: []cli.Argument{
					&cli.StringArgs{Name: "ids", Min: 1, Max: 50},
				},
				Action: r.LibraryLiked,
			},
			{
				Name:  "stamp",
				Usage: "File the current track into the Vinyl Player playlist",
				Action: r.LibraryStamp,
			},
		},
	}
}

// tuiCommand returns the top-level command for the now-playing view.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"now", "ui"},
		Usage:   "Launch the interactive now-playing view",
		Action:  r.TUI,
	}
}
