package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger: human-readable in development, JSON
// everywhere else. APP_ENV selects the mode.
func New() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
