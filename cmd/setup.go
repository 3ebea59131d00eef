package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/desertthunder/vinyl/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup writes a config.toml scaffold and initializes the credential
// database so auth login can persist a session.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writePlain("✓ Config already exists at %s\n", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.writePlain("✓ Created %s\n", configPath)
		r.writePlain("  Edit it to add your Spotify client_id before logging in.\n")
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open credential database: %w", err)
	}
	defer db.Close()

	if _, err := store.NewSQLiteStore(db); err != nil {
		return err
	}

	r.writePlain("✓ Credential database ready at %s\n", r.config.Database.Path)
	r.writePlain("\nNext: vinyl auth login\n")

	return nil
}
