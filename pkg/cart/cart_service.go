package cart

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CartService interface {
		AddToCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error)
		RemoveFromCart(ctx context.Context, recipeID string, userID string) error
		DownloadShoppingList(ctx context.Context, userID string) (string, []byte, error)
	}

	cartService struct {
		cartRepository   CartRepository
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewCartService(
	cartRepository CartRepository,
	recipeRepository recipe.RecipeRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) CartService {
	return &cartService{
		cartRepository:   cartRepository,
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

func (s *cartService) AddToCart(ctx context.Context, recipeID string, userID string) (domain.RecipeShortResponse, error) {
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

	exists, err := s.cartRepository.IsInCart(ctx, uid, r.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if exists {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
	}

	if err := s.cartRepository.AddToCart(ctx, uid, r.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeShortResponse{}, err
	}

	return user.NewRecipeShortResponse(r, s.s3), nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, recipeID string, userID string) error {
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

	deleted, err := s.cartRepository.RemoveFromCart(ctx, uid, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

// DownloadShoppingList returns the attachment file name and the rendered
// plain-text list.
func (s *cartService) DownloadShoppingList(ctx context.Context, userID string) (string, []byte, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	u, err := s.userRepository.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, err
	}

	items, err := s.cartRepository.GetShoppingList(ctx, uid)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordShoppingListExport()
	logging.Debug().Str("user_id", userID).Int("lines", len(items)).Msg("shopping list exported")

	return u.Username + domain.ShoppingListFilenameSuffix, FormatShoppingList(items), nil
}

// FormatShoppingList renders one "• name (unit) — total" line per item,
// separated by newlines with none after the last line.
func FormatShoppingList(items []domain.ShoppingListItem) []byte {
	var buf bytes.Buffer
	for i, item := range items {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, domain.ShoppingListLineFormat, item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return buf.Bytes()
}
