package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/curator/internal/classifier"
	"github.com/harrison/curator/internal/config"
	"github.com/harrison/curator/internal/logger"
	"github.com/harrison/curator/internal/rules"
	"github.com/harrison/curator/internal/session"
	"github.com/harrison/curator/internal/storage"
)

// sessionEnv bundles everything a command needs to run the pipeline.
type sessionEnv struct {
	cfg     *config.Config
	console *logger.ConsoleLogger
	root    *storage.Root
	store   *rules.Store
	sess    *session.Session
}

// close releases the session lock and the rule store.
func (e *sessionEnv) close() {
	if e.sess != nil {
		e.sess.Release()
	}
	if e.store != nil {
		e.store.Close()
	}
}

// setupSession loads configuration, opens the root with read-write access,
// opens the rule store, builds the oracle when configured, and acquires the
// session lock. Lock or root acquisition failures are terminal.
func setupSession(rootPath, logLevel string, extraExclusions []string) (*sessionEnv, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Exclusions = append(cfg.Exclusions, extraExclusions...)

	console := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)

	root, err := storage.OpenRoot(rootPath)
	if err != nil {
		return nil, err
	}

	store, err := rules.NewStore(cfg.RuleDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule store: %w", err)
	}

	sess := session.New(cfg, root, store, buildOracle(cfg, console), console)
	if err := sess.Acquire(stateDirOf(cfg)); err != nil {
		store.Close()
		return nil, err
	}

	return &sessionEnv{
		cfg:     cfg,
		console: console,
		root:    root,
		store:   store,
		sess:    sess,
	}, nil
}

// buildOracle constructs the remote oracle when it is enabled and an API key
// is present; otherwise classification runs on rules and the fallback table
// alone.
func buildOracle(cfg *config.Config, console *logger.ConsoleLogger) classifier.Oracle {
	if !cfg.Oracle.Enabled {
		return nil
	}
	apiKey := cfg.OracleAPIKey()
	if apiKey == "" {
		if console != nil {
			console.Debugf("oracle enabled but %s is not set, using fallback table", cfg.Oracle.APIKeyEnv)
		}
		return nil
	}
	return classifier.NewOpenAIOracle(classifier.OpenAIConfig{
		APIKey:  apiKey,
		Model:   cfg.Oracle.Model,
		BaseURL: cfg.Oracle.BaseURL,
		Timeout: cfg.Oracle.Timeout,
	})
}

// stateDirOf derives the state directory from the rule database location so
// the session lock lives next to the rest of curator's state.
func stateDirOf(cfg *config.Config) string {
	dir := filepath.Dir(cfg.RuleDBPath)
	if dir == "." || dir == "" {
		return config.DefaultStateDir
	}
	return dir
}
