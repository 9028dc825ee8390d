// Package env loads process configuration from .env files before the rest
// of the configuration layers read the environment.
package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// ENV_PATH overrides defaultPath when set. A missing file is fatal in local
// mode (env "local" or empty); deployed environments continue with whatever
// the process environment already carries.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "path", envPath, "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}
