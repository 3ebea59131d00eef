package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vinyl/internal/spotify"
)

const pollInterval = time.Second

// Model represents the now-playing view state.
type Model struct {
	ctx      context.Context
	client   *spotify.Client
	playback *spotify.PlaybackState
	liked    bool
	err      error
	width    int
	bar      progress.Model
	help     help.Model
	keys     keyMap
}

// NewModel creates the now-playing model polling playback through client.
func NewModel(ctx context.Context, client *spotify.Client) Model {
	bar := progress.New(progress.WithSolidFill("#B5651D"), progress.WithoutPercentage())
	return Model{
		ctx:    ctx,
		client: client,
		bar:    bar,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPlayback(), m.tick())
}

// Update implements [tea.Model].
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-10, 48)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		return m, m.action(func(ctx context.Context) error {
			if m.playback != nil && m.playback.IsPlaying {
				return m.client.Pause(ctx)
			}
			return m.client.Play(ctx)
		})
	case key.Matches(msg, m.keys.next):
		return m, m.action(m.client.SkipNext)
	case key.Matches(msg, m.keys.prev):
		return m, m.action(m.client.SkipPrevious)
	case key.Matches(msg, m.keys.shuffle):
		shuffled := m.playback != nil && m.playback.ShuffleState
		return m, m.action(func(ctx context.Context) error {
			return m.client.SetShuffle(ctx, !shuffled)
		})
	case key.Matches(msg, m.keys.repeat):
		next := nextRepeatMode(m.currentRepeat())
		return m, m.action(func(ctx context.Context) error {
			return m.client.SetRepeat(ctx, next)
		})
	case key.Matches(msg, m.keys.like):
		if track := m.currentTrack(); track != nil {
			id, liked := track.ID, m.liked
			return m, m.action(func(ctx context.Context) error {
				if liked {
					return m.client.RemoveSavedTracks(ctx, []string{id})
				}
				return m.client.SaveTracks(ctx, []string{id})
			})
		}
	case key.Matches(msg, m.keys.stamp):
		if track := m.currentTrack(); track != nil {
			id := track.ID
			return m, m.action(func(ctx context.Context) error {
				_, err := m.client.StampTrack(ctx, id)
				return err
			})
		}
	}
	return m, nil
}

func (m Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTick:
		return m, tea.Batch(m.fetchPlayback(), m.tick())

	case MsgPlaybackFetched:
		data := msg.data.(struct {
			state *spotify.PlaybackState
			liked bool
			err   error
		})
		m.playback, m.liked, m.err = data.state, data.liked, data.err
		return m, nil

	case MsgActionDone:
		if err, ok := msg.data.(error); ok && err != nil {
			m.err = err
			return m, nil
		}
		return m, m.fetchPlayback()
	}
	return m, nil
}

// View implements [tea.Model].
func (m Model) View() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render("✗ " + m.err.Error()))
	case m.playback == nil || m.playback.Item == nil:
		b.WriteString(styles.warn.Render("♫ nothing playing"))
		b.WriteString(styles.help.Render("\n  start playback on any device to begin"))
	default:
		track := m.playback.Item
		b.WriteString(styles.title.Render("♫ " + track.Name))
		if m.liked {
			b.WriteString(styles.ok.Render(" ♥"))
		}
		b.WriteString("\n  " + artistLine(track))

		ratio := 0.0
		if track.DurationMS > 0 {
			ratio = float64(m.playback.ProgressMS) / float64(track.DurationMS)
		}
		b.WriteString("\n  " + m.bar.ViewAs(ratio))
		b.WriteString(styles.help.Render(fmt.Sprintf(" %s / %s",
			fmtDuration(m.playback.ProgressMS), fmtDuration(track.DurationMS))))

		b.WriteString("\n  " + m.statusLine())
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	state := "paused"
	if m.playback.IsPlaying {
		state = "playing"
	}

	parts := []string{state}
	if m.playback.ShuffleState {
		parts = append(parts, "shuffle")
	}
	if mode := m.currentRepeat(); mode != spotify.RepeatOff {
		parts = append(parts, "repeat "+string(mode))
	}

	return styles.help.Render(strings.Join(parts, " · "))
}

// fetchPlayback loads the snapshot plus the saved state of its track.
func (m Model) fetchPlayback() tea.Cmd {
	return func() tea.Msg {
		state, err := m.client.CurrentPlayback(m.ctx)
		if err != nil || state == nil || state.Item == nil {
			return playbackFetchedMsg(state, false, err)
		}

		liked := false
		if saved, err := m.client.SavedStateForTracks(m.ctx, []string{state.Item.ID}); err == nil && len(saved) == 1 {
			liked = saved[0]
		}
		return playbackFetchedMsg(state, liked, nil)
	}
}

// action runs a playback operation off the render loop.
func (m Model) action(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg(op(m.ctx))
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return tickMsg()
	})
}

func (m Model) currentTrack() *spotify.Track {
	if m.playback == nil {
		return nil
	}
	return m.playback.Item
}

func (m Model) currentRepeat() spotify.RepeatMode {
	if m.playback == nil || m.playback.RepeatState == "" {
		return spotify.RepeatOff
	}
	return m.playback.RepeatState
}

func nextRepeatMode(mode spotify.RepeatMode) spotify.RepeatMode {
	switch mode {
	case spotify.RepeatOff:
		return spotify.RepeatContext
	case spotify.RepeatContext:
		return spotify.RepeatTrack
	default:
		return spotify.RepeatOff
	}
}

func artistLine(track *spotify.Track) string {
	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		names = append(names, a.Name)
	}

	line := strings.Join(names, ", ")
	if track.Album.Name != "" {
		line += styles.help.Render(" · " + track.Album.Name)
	}
	return line
}

func fmtDuration(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
