package handlers

import (
	"fmt"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/cart"
	"Foodgram-Backend/pkg/favourite"

	"github.com/gofiber/fiber/v2"
)

type (
	EngagementHandler interface {
		AddFavourite(c *fiber.Ctx) error
		RemoveFavourite(c *fiber.Ctx) error
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	engagementHandler struct {
		favouriteService favourite.FavouriteService
		cartService      cart.CartService
	}
)

func NewEngagementHandler(favouriteService favourite.FavouriteService, cartService cart.CartService) EngagementHandler {
	return &engagementHandler{
		favouriteService: favouriteService,
		cartService:      cartService,
	}
}

func (h *engagementHandler) AddFavourite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.favouriteService.AddFavourite(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddFavourite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFavourite)
}

func (h *engagementHandler) RemoveFavourite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.favouriteService.RemoveFavourite(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.Fail(c, domain.MessageFailedRemoveFavourite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRemoveFavourite)
}

func (h *engagementHandler) AddToCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cartService.AddToCart(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddToCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *engagementHandler) RemoveFromCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.cartService.RemoveFromCart(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.Fail(c, domain.MessageFailedRemoveFromCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRemoveFromCart)
}

// DownloadShoppingCart sends the aggregated list as a text attachment rather
// than the JSON envelope.
func (h *engagementHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	filename, content, err := h.cartService.DownloadShoppingList(c.Context(), userID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedDownloadCart, err)
	}

	c.Set(fiber.HeaderContentType, domain.ShoppingListContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(content)
}
