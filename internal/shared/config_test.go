package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := DefaultConfig()

		if cfg.Credentials.Spotify.RedirectURI != "http://127.0.0.1:3000/callback" {
			t.Errorf("unexpected redirect_uri %s", cfg.Credentials.Spotify.RedirectURI)
		}
		if cfg.Database.Path == "" {
			t.Error("expected a default database path")
		}
		if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 3000 {
			t.Errorf("unexpected server defaults %s:%d", cfg.Server.Host, cfg.Server.Port)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "cid"
redirect_uri = "http://localhost:9999/cb"
scopes = ["user-read-playback-state"]

[database]
path = "/tmp/test.db"

[server]
host = "localhost"
port = 9999
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.Credentials.Spotify.ClientID != "cid" {
			t.Errorf("unexpected client_id %s", cfg.Credentials.Spotify.ClientID)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("unexpected database path %s", cfg.Database.Path)
		}
		if got := cfg.Credentials.Spotify.ScopeList(); len(got) != 1 || got[0] != "user-read-playback-state" {
			t.Errorf("expected configured scopes to win, got %v", got)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("ScopeList Fallback", func(t *testing.T) {
		var cfg SpotifyConfig
		got := cfg.ScopeList()
		if len(got) != len(DefaultScopes) {
			t.Fatalf("expected %d default scopes, got %d", len(DefaultScopes), len(got))
		}
		for _, scope := range []string{"user-modify-playback-state", "playlist-modify-private"} {
			found := false
			for _, s := range got {
				if s == scope {
					found = true
				}
			}
			if !found {
				t.Errorf("expected default scopes to include %s", scope)
			}
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("CLIENT_ID", "env_client")
		t.Setenv("REDIRECT_URI", "http://localhost:8080/cb")

		cfg := DefaultConfig()
		cfg.ApplyEnv()

		if cfg.Credentials.Spotify.ClientID != "env_client" {
			t.Errorf("expected env client id, got %s", cfg.Credentials.Spotify.ClientID)
		}
		if cfg.Credentials.Spotify.RedirectURI != "http://localhost:8080/cb" {
			t.Errorf("expected env redirect uri, got %s", cfg.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("ApplyEnv Empty Values Ignored", func(t *testing.T) {
		t.Setenv("CLIENT_ID", "")
		t.Setenv("REDIRECT_URI", "")

		cfg := DefaultConfig()
		before := cfg.Credentials.Spotify.RedirectURI
		cfg.ApplyEnv()

		if cfg.Credentials.Spotify.RedirectURI != before {
			t.Error("empty environment variables must not override the config")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created file should parse, got %v", err)
		}
		if cfg.Server.Port != 3000 {
			t.Errorf("unexpected port %d", cfg.Server.Port)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected an error when the file already exists")
		}
	})
}
