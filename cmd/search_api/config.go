package main

import (
	"log/slog"
	"os"

	"github.com/mpavkov/search-refinery/internal/backend/factory"
	"github.com/mpavkov/search-refinery/pkg/config/env"
)

const defaultSettingsPath = "cmd/search_api/settings.yaml"

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type SearchApiConfig struct {
	BackendConfig factory.BackendConfig
	SettingsPath  string
}

func (ac *AppConfig) Load() (*SearchApiConfig, error) {

	err := env.LoadDotEnv(ac.ENV, "cmd/search_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	backendCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load backend configuration from environment", "error", err)
		return nil, err
	}

	settingsPath := os.Getenv("SETTINGS_PATH")
	if settingsPath == "" {
		settingsPath = defaultSettingsPath
	}

	return &SearchApiConfig{
		BackendConfig: *backendCfg,
		SettingsPath:  settingsPath,
	}, nil
}
