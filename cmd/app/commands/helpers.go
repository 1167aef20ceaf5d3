// Package commands implements the app subcommands; main wires them into urfave/cli.
package commands

import (
	"context"
	"log/slog"

	"github.com/allisson/coffeeshop/internal/app"
	"github.com/allisson/coffeeshop/internal/config"
)

// WithContainer builds a container from the environment, runs fn with it and
// shuts the container down afterwards.
func WithContainer(fn func(container *app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer closeContainer(container)
	return fn(container)
}

func closeContainer(container *app.Container) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := container.Shutdown(ctx); err != nil {
		container.Logger().Error("failed to shut down container", slog.Any("error", err))
	}
}
