// Package ui implements the compact now-playing view using bubbletea's Elm architecture.
//
// The [Model] polls the remote player once a second and renders the current
// track, a progress bar, and transport state. Key presses dispatch playback
// and library operations as bubbletea commands; their results flow back
// through the Msg union type.
//
// Keyboard controls: space toggles play/pause, n/p skip, s shuffle, r cycles
// repeat, l likes the current track, S stamps it into the Vinyl Player
// playlist, q quits. Contextual help is rendered via charmbracelet/bubbles/help.
package ui
