package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/shortlink"

	"github.com/gofiber/fiber/v2"
)

type (
	ShortLinkHandler interface {
		GetLink(c *fiber.Ctx) error
		Redirect(c *fiber.Ctx) error
	}

	shortLinkHandler struct {
		shortLinkService shortlink.ShortLinkService
	}
)

func NewShortLinkHandler(shortLinkService shortlink.ShortLinkService) ShortLinkHandler {
	return &shortLinkHandler{shortLinkService: shortLinkService}
}

func (h *shortLinkHandler) GetLink(c *fiber.Ctx) error {
	res, err := h.shortLinkService.GetRecipeLink(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetShortLink, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShortLink)
}

func (h *shortLinkHandler) Redirect(c *fiber.Ctx) error {
	target, err := h.shortLinkService.Resolve(c.Context(), c.Params("hash"))
	if err != nil {
		return presenters.Fail(c, domain.MessageResourceNotFound, err)
	}

	return c.Redirect(target, fiber.StatusFound)
}
