// Package http provides HTTP handlers for the drink menu.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	"github.com/allisson/coffeeshop/internal/drink/http/dto"
	drinkUseCase "github.com/allisson/coffeeshop/internal/drink/usecase"
	"github.com/allisson/coffeeshop/internal/httputil"
	customValidation "github.com/allisson/coffeeshop/internal/validation"
)

// DrinkHandler handles HTTP requests for the drink menu.
// Authentication and permission checks are attached at route registration.
type DrinkHandler struct {
	drinkUseCase drinkUseCase.DrinkUseCase
	logger       *slog.Logger
}

// NewDrinkHandler creates a new drink handler.
func NewDrinkHandler(drinkUseCase drinkUseCase.DrinkUseCase, logger *slog.Logger) *DrinkHandler {
	return &DrinkHandler{
		drinkUseCase: drinkUseCase,
		logger:       logger,
	}
}

// ListHandler returns every drink in the public short form.
// GET /drinks - Public.
func (h *DrinkHandler) ListHandler(c *gin.Context) {
	drinks, err := h.drinkUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToShortResponse(drinks))
}

// DetailHandler returns every drink with full recipes.
// GET /drinks-detail - Requires get:drinks-detail.
func (h *DrinkHandler) DetailHandler(c *gin.Context) {
	drinks, err := h.drinkUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drinks...))
}

// CreateHandler creates a drink from a title and a recipe.
// POST /drinks - Requires post:drinks.
// Returns 200 OK with the created drink in long form.
func (h *DrinkHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateDrinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	drink, err := h.drinkUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drink))
}

// UpdateHandler applies a partial update to a drink.
// PATCH /drinks/:id - Requires patch:drinks.
// Returns 200 OK with the updated drink in long form.
func (h *DrinkHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDrinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	drink, err := h.drinkUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drink))
}

// DeleteHandler removes a drink.
// DELETE /drinks/:id - Requires delete:drinks.
// Returns 200 OK with the deleted id.
func (h *DrinkHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.drinkUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteDrinkResponse{Success: true, Deleted: id})
}

// parseID reads the :id path parameter. A non-integer id is treated like an unknown drink.
func (h *DrinkHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleErrorGin(c, drinkDomain.ErrDrinkNotFound, h.logger)
		return 0, false
	}
	return id, true
}
