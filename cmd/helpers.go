package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/auth"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/history"
	"github.com/litscout/litscout/internal/notify"
)

// loadConfig loads and validates the config, providing a friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `litscout init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `litscout init` to fix it", err)
	}
	return cfg, nil
}

// newSession restores the stored session from ~/.litscout.
func newSession() (*auth.Session, error) {
	store, err := auth.NewDefaultStore()
	if err != nil {
		return nil, err
	}
	session := auth.NewSession(store)
	session.Initialize()
	return session, nil
}

// newClient builds the backend client from config and the stored session.
// Uploads show a progress bar when stderr is a terminal-ish stream.
func newClient(cfg *config.Config, session *auth.Session) *api.Client {
	client := api.New(cfg.APIURL, session, time.Duration(cfg.RequestTimeout)*time.Second)
	client.ShowProgress = true
	return client
}

// requireAuth fails fast with a login hint before any network call.
func requireAuth(session *auth.Session) error {
	if !session.Authenticated() {
		return fmt.Errorf("not logged in, run `litscout auth login` first")
	}
	return nil
}

// resolveProject picks the project from --project or the config default.
func resolveProject(cfg *config.Config) (string, error) {
	if projectFlag != "" {
		return projectFlag, nil
	}
	if cfg.Project != "" {
		return cfg.Project, nil
	}
	return "", fmt.Errorf("no project selected: pass --project or set a default with `litscout init`")
}

// openHistory opens the local search history. Failures degrade to a nil
// store; recording is best effort.
func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search history unavailable: %v\n", err)
		return nil
	}
	return store
}

func newNotifier() *notify.Notifier {
	return notify.New()
}

// newLogger builds the zerolog logger the dashboard uses: pretty console
// output, debug level under --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
