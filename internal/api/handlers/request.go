package handlers

import (
	"strconv"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// pagination reads ?page= and ?limit=, falling back to the first page of
// DefaultPageSize items.
func pagination(c *fiber.Ctx) domain.PaginationRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	return domain.PaginationRequest{Page: page, Limit: limit}
}

// viewerID is the authenticated caller, or "" for anonymous requests.
func viewerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// bindJSON decodes the body strictly and validates the result.
func bindJSON(c *fiber.Ctx, v *validator.Validate, dst any) error {
	if err := utils.DecodeStrict(c.Body(), dst); err != nil {
		return err
	}
	if err := v.Struct(dst); err != nil {
		return utils.TranslateError(err)
	}
	return nil
}

func paginated(results any, page domain.PaginationRequest, total int64) fiber.Map {
	return fiber.Map{
		"results":    results,
		"pagination": domain.NewPaginationResponse(page, total),
	}
}
