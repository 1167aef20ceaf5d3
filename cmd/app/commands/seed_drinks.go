package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	drinkUseCase "github.com/allisson/coffeeshop/internal/drink/usecase"
)

// RunSeedDrinks inserts the default drinks and prints the ones that were created.
// Drinks whose title already exists are skipped, so running it twice is harmless.
//
// Requirements: Database must be migrated and accessible.
func RunSeedDrinks(
	ctx context.Context,
	useCase drinkUseCase.DrinkUseCase,
	logger *slog.Logger,
	out io.Writer,
	reset bool,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	logger.Info("seeding drinks", slog.Bool("reset", reset))

	drinks, err := useCase.Seed(ctx, reset)
	if err != nil {
		return fmt.Errorf("failed to seed drinks: %w", err)
	}

	if format == "json" {
		if err := outputSeedJSON(out, drinks, reset); err != nil {
			return err
		}
	} else {
		outputSeedText(out, drinks, reset)
	}

	logger.Info("seed completed", slog.Int("count", len(drinks)))
	return nil
}

func outputSeedText(out io.Writer, drinks []*drinkDomain.Drink, reset bool) {
	if reset {
		_, _ = fmt.Fprintln(out, "Existing drinks removed")
	}
	if len(drinks) == 0 {
		_, _ = fmt.Fprintln(out, "No drinks seeded, the default menu is already present")
		return
	}
	_, _ = fmt.Fprintf(out, "Seeded %d drink(s):\n", len(drinks))
	for _, drink := range drinks {
		_, _ = fmt.Fprintf(out, "  %d\t%s\n", drink.ID, drink.Title)
	}
}

func outputSeedJSON(out io.Writer, drinks []*drinkDomain.Drink, reset bool) error {
	long := make([]drinkDomain.LongDrink, 0, len(drinks))
	for _, drink := range drinks {
		long = append(long, drink.Long())
	}

	result := map[string]any{
		"count":  len(drinks),
		"reset":  reset,
		"drinks": long,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(out, string(jsonBytes))
	return err
}
