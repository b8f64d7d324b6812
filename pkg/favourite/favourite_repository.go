package favourite

import (
	"context"

	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavouriteRepository interface {
		CreateFavourite(ctx context.Context, userID, recipeID uuid.UUID) error
		DeleteFavourite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
		IsFavourited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	}

	favouriteRepository struct {
		db *gorm.DB
	}
)

func NewFavouriteRepository(db *gorm.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

func (r *favouriteRepository) CreateFavourite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entities.Favourite{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *favouriteRepository) DeleteFavourite(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favourite{})
	return res.RowsAffected, res.Error
}

func (r *favouriteRepository) IsFavourited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favourite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
