package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vinyl/internal/spotify"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTick MsgKind = iota
	MsgPlaybackFetched
	MsgActionDone
)

// tickMsg is the constructor for [MsgTick]
func tickMsg() Msg {
	return Msg{kind: MsgTick}
}

// playbackFetchedMsg is the constructor for [MsgPlaybackFetched]
func playbackFetchedMsg(state *spotify.PlaybackState, liked bool, err error) Msg {
	return Msg{
		kind: MsgPlaybackFetched,
		data: struct {
			state *spotify.PlaybackState
			liked bool
			err   error
		}{state, liked, err},
	}
}

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(err error) Msg {
	return Msg{kind: MsgActionDone, data: err}
}
