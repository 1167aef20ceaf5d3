package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/coffeeshop/cmd/app/commands"
	"github.com/allisson/coffeeshop/internal/app"
)

func getDrinkCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seed-drinks",
			Usage: "Insert the default drinks into the menu",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "reset",
					Aliases: []string{"r"},
					Value:   false,
					Usage:   "Delete every existing drink before seeding",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.WithContainer(func(container *app.Container) error {
					drinkUseCase, err := container.DrinkUseCase()
					if err != nil {
						return err
					}

					return commands.RunSeedDrinks(
						ctx,
						drinkUseCase,
						container.Logger(),
						cmd.Root().Writer,
						cmd.Bool("reset"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
