package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/vinyl/internal/shared"
)

func TestSavedTracks(t *testing.T) {
	t.Run("SavedStateForTracks", func(t *testing.T) {
		t.Run("Order Preserved", func(t *testing.T) {
			var rec recorded
			srv := recordingServer(http.StatusOK, `[true, false, true]`, &rec)
			defer srv.Close()

			c := newTestClient(srv, &stubTokens{token: "T"})
			saved, err := c.SavedStateForTracks(context.Background(), []string{"a", "b", "c"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if rec.url != "/me/tracks/contains?ids=a%2Cb%2Cc" {
				t.Errorf("unexpected request URL %s", rec.url)
			}
			want := []bool{true, false, true}
			if len(saved) != len(want) {
				t.Fatalf("expected %d results, got %d", len(want), len(saved))
			}
			for i := range want {
				if saved[i] != want[i] {
					t.Errorf("position %d: expected %t, got %t", i, want[i], saved[i])
				}
			}
		})

		t.Run("Empty Input", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("empty input should not hit the API")
			}))
			defer srv.Close()

			c := newTestClient(srv, &stubTokens{token: "T"})
			saved, err := c.SavedStateForTracks(context.Background(), nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if saved == nil || len(saved) != 0 {
				t.Errorf("expected empty slice, got %v", saved)
			}
		})

		t.Run("Query Failure", func(t *testing.T) {
			var rec recorded
			srv := recordingServer(http.StatusInternalServerError, "", &rec)
			defer srv.Close()

			c := newTestClient(srv, &stubTokens{token: "T"})
			if _, err := c.SavedStateForTracks(context.Background(), []string{"a"}); !errors.Is(err, shared.ErrLibraryQuery) {
				t.Errorf("expected ErrLibraryQuery, got %v", err)
			}
		})
	})

	t.Run("SaveTracks", func(t *testing.T) {
		var rec recorded
		srv := recordingServer(http.StatusOK, "", &rec)
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		if err := c.SaveTracks(context.Background(), []string{"a", "b"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rec.method != http.MethodPut || rec.url != "/me/tracks?ids=a%2Cb" {
			t.Errorf("expected PUT /me/tracks?ids=a%%2Cb, got %s %s", rec.method, rec.url)
		}
	})

	t.Run("RemoveSavedTracks", func(t *testing.T) {
		var rec recorded
		srv := recordingServer(http.StatusOK, "", &rec)
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		if err := c.RemoveSavedTracks(context.Background(), []string{"a"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rec.method != http.MethodDelete || rec.url != "/me/tracks?ids=a" {
			t.Errorf("expected DELETE /me/tracks?ids=a, got %s %s", rec.method, rec.url)
		}
	})
}

func TestFindOrCreatePlaylist(t *testing.T) {
	t.Run("Found On Later Page", func(t *testing.T) {
		var posts atomic.Int64
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				posts.Add(1)
				w.WriteHeader(http.StatusCreated)
				return
			}
			switch r.URL.Path {
			case "/me/playlists":
				next := srv.URL + "/page2"
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]string{{"id": "p1", "name": "Road Trips"}},
					"next":  next,
				})
			case "/page2":
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]string{{"id": "p2", "name": "VINYL player"}},
					"next":  nil,
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		id, err := c.FindOrCreatePlaylist(context.Background(), "Vinyl Player")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "p2" {
			t.Errorf("expected case-insensitive match p2, got %s", id)
		}
		if n := posts.Load(); n != 0 {
			t.Errorf("expected no playlist creation, got %d POSTs", n)
		}
	})

	t.Run("Created When Absent", func(t *testing.T) {
		var createBody map[string]any
		var createPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost:
				createPath = r.URL.Path
				json.NewDecoder(r.Body).Decode(&createBody)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"id": "new_playlist", "name": "Vinyl Player"}`)
			case r.URL.Path == "/me/playlists":
				fmt.Fprint(w, `{"items": [], "next": null}`)
			case r.URL.Path == "/me":
				fmt.Fprint(w, `{"id": "user123"}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		id, err := c.FindOrCreatePlaylist(context.Background(), "Vinyl Player")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "new_playlist" {
			t.Errorf("expected new_playlist, got %s", id)
		}
		if createPath != "/users/user123/playlists" {
			t.Errorf("unexpected create path %s", createPath)
		}
		if createBody["name"] != "Vinyl Player" {
			t.Errorf("unexpected playlist name %v", createBody["name"])
		}
		if createBody["public"] != false {
			t.Errorf("expected a private playlist, got public=%v", createBody["public"])
		}
		if createBody["description"] != playlistDescription {
			t.Errorf("unexpected description %v", createBody["description"])
		}
	})

	t.Run("Listing Failure Falls Through To Create", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost:
				fmt.Fprint(w, `{"id": "fallback", "name": "Vinyl Player"}`)
			case r.URL.Path == "/me/playlists":
				w.WriteHeader(http.StatusInternalServerError)
			case r.URL.Path == "/me":
				fmt.Fprint(w, `{"id": "user123"}`)
			}
		}))
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		id, err := c.FindOrCreatePlaylist(context.Background(), "Vinyl Player")
		if err != nil {
			t.Fatalf("expected fallback create, got %v", err)
		}
		if id != "fallback" {
			t.Errorf("expected fallback, got %s", id)
		}
	})
}

func TestPlaylistTracks(t *testing.T) {
	t.Run("IsTrackInPlaylist", func(t *testing.T) {
		t.Run("Present On Second Page", func(t *testing.T) {
			var srv *httptest.Server
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/playlists/p1/tracks":
					next := srv.URL + "/page2"
					json.NewEncoder(w).Encode(map[string]any{
						"items": []map[string]any{{"track": map[string]string{"id": "other"}}},
						"next":  next,
					})
				case "/page2":
					json.NewEncoder(w).Encode(map[string]any{
						"items": []map[string]any{{"track": map[string]string{"id": "wanted"}}},
						"next":  nil,
					})
				}
			}))
			defer srv.Close()

			c := newTestClient(srv, &stubTokens{token: "T"})
			present, err := c.IsTrackInPlaylist(context.Background(), "p1", "wanted")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !present {
				t.Error("expected track to be found on the second page")
			}
		})

		t.Run("Walk Failure Reads As Absent", func(t *testing.T) {
			var rec recorded
			srv := recordingServer(http.StatusInternalServerError, "", &rec)
			defer srv.Close()

			c := newTestClient(srv, &stubTokens{token: "T"})
			present, err := c.IsTrackInPlaylist(context.Background(), "p1", "wanted")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if present {
				t.Error("a failed walk must not report the track present")
			}
		})
	})

	t.Run("AddTrackToPlaylist", func(t *testing.T) {
		var body map[string][]string
		var rec recorded
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec.method = r.Method
			rec.url = r.URL.Path
			json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		if err := c.AddTrackToPlaylist(context.Background(), "p1", "track1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rec.method != http.MethodPost || rec.url != "/playlists/p1/tracks" {
			t.Errorf("expected POST /playlists/p1/tracks, got %s %s", rec.method, rec.url)
		}
		if len(body["uris"]) != 1 || body["uris"][0] != "spotify:track:track1" {
			t.Errorf("unexpected uris %v", body["uris"])
		}
	})
}

func TestStampTrack(t *testing.T) {
	// stampServer answers listing, membership, and append calls for one
	// playlist whose current contents are given.
	stampServer := func(t *testing.T, contents []string, adds *atomic.Int64) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/me/playlists":
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]string{{"id": "stamp", "name": "Vinyl Player"}},
					"next":  nil,
				})
			case r.URL.Path == "/playlists/stamp/tracks" && r.Method == http.MethodGet:
				items := make([]map[string]any, len(contents))
				for i, id := range contents {
					items[i] = map[string]any{"track": map[string]string{"id": id}}
				}
				json.NewEncoder(w).Encode(map[string]any{"items": items, "next": nil})
			case r.URL.Path == "/playlists/stamp/tracks" && r.Method == http.MethodPost:
				adds.Add(1)
				w.WriteHeader(http.StatusCreated)
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
	}

	t.Run("New Track", func(t *testing.T) {
		var adds atomic.Int64
		srv := stampServer(t, []string{"existing"}, &adds)
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		added, err := c.StampTrack(context.Background(), "fresh")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !added {
			t.Error("expected the track to be reported as newly added")
		}
		if n := adds.Load(); n != 1 {
			t.Errorf("expected 1 append, got %d", n)
		}
	})

	t.Run("Already Stamped", func(t *testing.T) {
		var adds atomic.Int64
		srv := stampServer(t, []string{"existing"}, &adds)
		defer srv.Close()

		c := newTestClient(srv, &stubTokens{token: "T"})
		added, err := c.StampTrack(context.Background(), "existing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if added {
			t.Error("a stamped track must not be reported as newly added")
		}
		if n := adds.Load(); n != 0 {
			t.Errorf("expected no append, got %d", n)
		}
	})
}

func TestTrackURI(t *testing.T) {
	if got := TrackURI("abc123"); got != "spotify:track:abc123" {
		t.Errorf("expected spotify:track:abc123, got %s", got)
	}
}
