package cart

import (
	"context"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CartRepository interface {
		AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		IsInCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		GetShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Cart{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *cartRepository) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Cart{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) IsInCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Cart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetShoppingList sums the amounts of every ingredient across the recipes in
// the user's cart, one row per (name, unit), in a single query.
func (r *cartRepository) GetShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredient_values").
		Select("ingredients.name AS name, " +
			"ingredients.measurement_unit AS measurement_unit, " +
			"SUM(recipe_ingredient_values.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredient_values.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredient_values.recipe_id").
		Where("carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc, ingredients.measurement_unit asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
