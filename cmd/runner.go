package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vinyl/internal/auth"
	"github.com/desertthunder/vinyl/internal/shared"
	"github.com/desertthunder/vinyl/internal/spotify"
	"github.com/desertthunder/vinyl/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	logger     *log.Logger
	output     io.Writer
	httpClient *http.Client

	db     *sql.DB
	creds  store.Store
	flow   *auth.Flow
	gate   *auth.Gate
	client *spotify.Client
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Store and Client may be injected by tests; when nil they are built lazily
// from the config on first use.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
	Store      store.Store
	Client     *spotify.Client
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: spotify.RequestTimeout}
	}

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		httpClient: opts.HTTPClient,
		creds:      opts.Store,
		client:     opts.Client,
	}
}

// SetLogger swaps the Runner's logger (used by the TUI to log to a file).
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the credential database if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playerCommand, libraryCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureStore opens the credential database and wires the auth flow.
func (r *Runner) ensureStore() error {
	if r.creds != nil && r.flow != nil {
		return nil
	}

	if r.creds == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open credential database: %w", err)
		}

		st, err := store.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return err
		}

		r.db = db
		r.creds = st
	}

	flow, err := auth.NewFlow(r.config.Credentials.Spotify, r.creds, r.httpClient)
	if err != nil {
		return err
	}
	r.flow = flow
	r.gate = auth.NewGate(r.creds, flow)

	return nil
}

// ensureClient wires the full API client on top of the credential store.
func (r *Runner) ensureClient() error {
	if r.client != nil {
		return nil
	}

	if err := r.ensureStore(); err != nil {
		return err
	}

	r.client = spotify.NewClient(r.gate, "", r.httpClient)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
