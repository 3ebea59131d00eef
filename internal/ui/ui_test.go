package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vinyl/internal/spotify"
)

func TestNextRepeatMode(t *testing.T) {
	cycle := map[spotify.RepeatMode]spotify.RepeatMode{
		spotify.RepeatOff:     spotify.RepeatContext,
		spotify.RepeatContext: spotify.RepeatTrack,
		spotify.RepeatTrack:   spotify.RepeatOff,
	}
	for from, want := range cycle {
		if got := nextRepeatMode(from); got != want {
			t.Errorf("nextRepeatMode(%s): expected %s, got %s", from, want, got)
		}
	}
}

func TestFmtDuration(t *testing.T) {
	cases := map[int]string{
		0:      "0:00",
		65000:  "1:05",
		185000: "3:05",
	}
	for ms, want := range cases {
		if got := fmtDuration(ms); got != want {
			t.Errorf("fmtDuration(%d): expected %s, got %s", ms, want, got)
		}
	}
}

func TestArtistLine(t *testing.T) {
	track := &spotify.Track{
		Artists: []spotify.Artist{{Name: "First"}, {Name: "Second"}},
		Album:   spotify.Album{Name: "Record"},
	}

	line := artistLine(track)
	if !strings.Contains(line, "First, Second") {
		t.Errorf("expected joined artists, got %q", line)
	}
	if !strings.Contains(line, "Record") {
		t.Errorf("expected album name, got %q", line)
	}
}

func TestModel(t *testing.T) {
	t.Run("Window Resize", func(t *testing.T) {
		m := NewModel(t.Context(), nil)

		updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		model := updated.(Model)
		if model.bar.Width != 48 {
			t.Errorf("expected bar width capped at 48, got %d", model.bar.Width)
		}

		updated, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 40})
		model = updated.(Model)
		if model.bar.Width != 30 {
			t.Errorf("expected bar width 30, got %d", model.bar.Width)
		}
	})

	t.Run("Idle View", func(t *testing.T) {
		m := NewModel(t.Context(), nil)
		view := m.View()
		if !strings.Contains(view, "nothing playing") {
			t.Errorf("expected idle message, got %q", view)
		}
	})

	t.Run("Playing View", func(t *testing.T) {
		m := NewModel(t.Context(), nil)
		m.playback = &spotify.PlaybackState{
			IsPlaying:  true,
			ProgressMS: 65000,
			Item: &spotify.Track{
				ID:         "t1",
				Name:       "Song",
				DurationMS: 185000,
				Artists:    []spotify.Artist{{Name: "Artist"}},
			},
		}
		m.liked = true

		view := m.View()
		for _, want := range []string{"Song", "Artist", "♥", "1:05 / 3:05", "playing"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected view to contain %q, got:\n%s", want, view)
			}
		}
	})
}
