package presenters

import (
	"errors"
	"fmt"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError(map[string]string{"name": "required"}), fiber.StatusBadRequest},
		{"field error", domain.FieldError("ingredients", domain.ErrDuplicateIngredients), fiber.StatusBadRequest},
		{"already favourited", domain.ErrAlreadyFavourited, fiber.StatusBadRequest},
		{"duplicate key", gorm.ErrDuplicatedKey, fiber.StatusBadRequest},
		{"self subscription", domain.ErrSelfSubscription, fiber.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrRecipeNotFound), fiber.StatusNotFound},
		{"short link not found", domain.ErrShortLinkNotFound, fiber.StatusNotFound},
		{"expired token", domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{"not the author", domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
