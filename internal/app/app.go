package app

import (
	"context"
	"fmt"

	"github.com/satchelapp/satchel/internal/config"
	"github.com/satchelapp/satchel/internal/portal"
	"github.com/satchelapp/satchel/internal/prefs"
	"github.com/satchelapp/satchel/internal/retry"
	"github.com/satchelapp/satchel/internal/state"
	"github.com/satchelapp/satchel/internal/ui"
)

// Options configure the Satchel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/satchel/prefs.toml
	BaseURL    string // overrides the configured api_base_url when set
}

// Run boots the Satchel TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.APIBaseURL = opts.BaseURL
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	storage, err := state.NewFileStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("init data dir: %w", err)
	}

	auth := state.NewAuthStore(storage)
	students := state.NewStudentStore(storage)
	records := &state.RecordsStore{}

	// Restore persisted state before any request can run: the client takes
	// its bearer token from the auth store.
	auth.Restore()
	students.Restore()

	client, err := portal.NewClient(cfg.APIBaseURL, auth)
	if err != nil {
		return fmt.Errorf("init portal client: %w", err)
	}
	client.SetTimeout(cfg.RequestTimeout)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Auth:      auth,
		Students:  students,
		Records:   records,
		Reads:     retry.Policy{},
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
