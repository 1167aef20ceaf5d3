package usecase

import (
	"context"
	"time"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	"github.com/allisson/coffeeshop/internal/metrics"
)

// drinkUseCaseWithMetrics decorates DrinkUseCase with metrics instrumentation.
type drinkUseCaseWithMetrics struct {
	next    DrinkUseCase
	metrics metrics.BusinessMetrics
}

// NewDrinkUseCaseWithMetrics wraps a DrinkUseCase with metrics recording.
func NewDrinkUseCaseWithMetrics(useCase DrinkUseCase, m metrics.BusinessMetrics) DrinkUseCase {
	return &drinkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *drinkUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	d.metrics.RecordOperation(ctx, operation, time.Since(start), err)
}

// List records metrics for drink listing and reports the menu size.
func (d *drinkUseCaseWithMetrics) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	start := time.Now()
	drinks, err := d.next.List(ctx)
	d.record(ctx, "drink_list", start, err)
	if err == nil {
		d.metrics.RecordMenuSize(ctx, len(drinks))
	}
	return drinks, err
}

// Create records metrics for drink creation.
func (d *drinkUseCaseWithMetrics) Create(
	ctx context.Context,
	input drinkDomain.CreateDrinkInput,
) (*drinkDomain.Drink, error) {
	start := time.Now()
	drink, err := d.next.Create(ctx, input)
	d.record(ctx, "drink_create", start, err)
	return drink, err
}

// Update records metrics for drink updates.
func (d *drinkUseCaseWithMetrics) Update(
	ctx context.Context,
	id int64,
	input drinkDomain.UpdateDrinkInput,
) (*drinkDomain.Drink, error) {
	start := time.Now()
	drink, err := d.next.Update(ctx, id, input)
	d.record(ctx, "drink_update", start, err)
	return drink, err
}

// Delete records metrics for drink deletion.
func (d *drinkUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)
	d.record(ctx, "drink_delete", start, err)
	return err
}

// Seed records metrics for menu seeding.
func (d *drinkUseCaseWithMetrics) Seed(ctx context.Context, reset bool) ([]*drinkDomain.Drink, error) {
	start := time.Now()
	drinks, err := d.next.Seed(ctx, reset)
	d.record(ctx, "drink_seed", start, err)
	return drinks, err
}
