package favourite

import (
	"context"
	"errors"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavouriteService interface {
		AddFavourite(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error)
		RemoveFavourite(ctx context.Context, recipeID string, userID string) error
	}

	favouriteService struct {
		favouriteRepository FavouriteRepository
		recipeRepository    recipe.RecipeRepository
		s3                  storage.AwsS3
	}
)

func NewFavouriteService(favouriteRepository FavouriteRepository, recipeRepository recipe.RecipeRepository, s3 storage.AwsS3) FavouriteService {
	return &favouriteService{
		favouriteRepository: favouriteRepository,
		recipeRepository:    recipeRepository,
		s3:                  s3,
	}
}

// AddFavourite fails with ErrAlreadyFavourited on a repeated call, including
// when two calls race and the unique index rejects the second.
func (s *favouriteService) AddFavourite(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShortResponse{}, domain.ErrUnauthorized
	}
	id, err := utils.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	r, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	exists, err := s.favouriteRepository.IsFavourited(ctx, uid, r.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if exists {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyFavourited
	}

	if err := s.favouriteRepository.CreateFavourite(ctx, uid, r.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyFavourited
		}
		return domain.RecipeShortResponse{}, err
	}

	return user.NewRecipeShortResponse(r, s.s3), nil
}

func (s *favouriteService) RemoveFavourite(ctx context.Context, recipeID string, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUnauthorized
	}
	id, err := utils.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return err
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.favouriteRepository.DeleteFavourite(ctx, uid, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFavourited
	}
	return nil
}
