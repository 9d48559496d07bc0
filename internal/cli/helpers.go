package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clausetag/clausetag/internal/logging"
	"github.com/clausetag/clausetag/internal/model"
	"github.com/clausetag/clausetag/internal/store"
)

// resolveStoreDir expands the store directory, defaulting to
// ~/.clausetag/store when unset
func resolveStoreDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".clausetag", "store"), nil
}

// openStore opens the disk-backed mapping store for the configuration
func openStore(cfg *model.Config) (store.Store, error) {
	dir, err := resolveStoreDir(cfg.Store.Dir)
	if err != nil {
		return nil, err
	}
	st, err := store.NewDiskStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newLogger builds the structured logger for the configuration
func newLogger(cfg *model.Config) (*slog.Logger, func() error, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.File)
}

// configureLLM fills LLM config from flags and the environment
func configureLLM(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = modelName

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
