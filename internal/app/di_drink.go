package app

import (
	"fmt"
	"sync"

	"github.com/allisson/coffeeshop/internal/database"
	drinkHTTP "github.com/allisson/coffeeshop/internal/drink/http"
	drinkRepository "github.com/allisson/coffeeshop/internal/drink/repository"
	drinkUseCase "github.com/allisson/coffeeshop/internal/drink/usecase"
)

// drinkComponents holds the drink menu dependencies.
type drinkComponents struct {
	drinkRepository drinkUseCase.DrinkRepository
	drinkUseCase    drinkUseCase.DrinkUseCase
	drinkHandler    *drinkHTTP.DrinkHandler

	drinkRepositoryInit sync.Once
	drinkUseCaseInit    sync.Once
	drinkHandlerInit    sync.Once
}

// DrinkRepository returns the drink repository for the configured database driver.
func (c *Container) DrinkRepository() (drinkUseCase.DrinkRepository, error) {
	c.drinkRepositoryInit.Do(func() {
		repo, err := c.initDrinkRepository()
		c.setResult("drinkRepository", err, func() { c.drinkRepository = repo })
	})
	if err := c.initError("drinkRepository"); err != nil {
		return nil, err
	}
	return c.drinkRepository, nil
}

// DrinkUseCase returns the drink use case, instrumented when metrics are enabled.
func (c *Container) DrinkUseCase() (drinkUseCase.DrinkUseCase, error) {
	c.drinkUseCaseInit.Do(func() {
		useCase, err := c.initDrinkUseCase()
		c.setResult("drinkUseCase", err, func() { c.drinkUseCase = useCase })
	})
	if err := c.initError("drinkUseCase"); err != nil {
		return nil, err
	}
	return c.drinkUseCase, nil
}

// DrinkHandler returns the drink HTTP handler.
func (c *Container) DrinkHandler() (*drinkHTTP.DrinkHandler, error) {
	c.drinkHandlerInit.Do(func() {
		handler, err := c.initDrinkHandler()
		c.setResult("drinkHandler", err, func() { c.drinkHandler = handler })
	})
	if err := c.initError("drinkHandler"); err != nil {
		return nil, err
	}
	return c.drinkHandler, nil
}

// initDrinkRepository selects the repository implementation by driver.
func (c *Container) initDrinkRepository() (drinkUseCase.DrinkRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for drink repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return drinkRepository.NewMySQLDrinkRepository(db), nil
	case database.DriverPostgres:
		return drinkRepository.NewPostgreSQLDrinkRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDrinkUseCase creates the drink use case with its dependencies.
func (c *Container) initDrinkUseCase() (drinkUseCase.DrinkUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for drink use case: %w", err)
	}

	repo, err := c.DrinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink repository for drink use case: %w", err)
	}

	baseUseCase := drinkUseCase.NewDrinkUseCase(txManager, repo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for drink use case: %w", err)
		}
		return drinkUseCase.NewDrinkUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDrinkHandler creates the drink HTTP handler.
func (c *Container) initDrinkHandler() (*drinkHTTP.DrinkHandler, error) {
	useCase, err := c.DrinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink use case for drink handler: %w", err)
	}
	return drinkHTTP.NewDrinkHandler(useCase, c.Logger()), nil
}
