package impl

import (
	"io"
	"log/slog"

	"taskbox/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        10,
			MinPasswordLength: 8,
		},
	}
}
