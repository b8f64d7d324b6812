package recipe

import (
	"context"
	"errors"
	"sort"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes/images"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID string) ([]domain.RecipeResponse, domain.PaginationResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.RecipeListRequest, viewerID string) ([]domain.RecipeResponse, domain.PaginationResponse, error) {
	var filter RecipeFilter

	if req.AuthorID != "" {
		authorID, err := uuid.Parse(req.AuthorID)
		if err != nil {
			return nil, domain.PaginationResponse{}, domain.FieldError("author", domain.ErrParseUUID)
		}
		filter.AuthorID = &authorID
	}

	// the per-user filters only make sense for an authenticated caller
	if viewer, err := uuid.Parse(viewerID); err == nil {
		if req.IsFavorited {
			filter.FavouriteOf = &viewer
		}
		if req.IsInShoppingCart {
			filter.InCartOf = &viewer
		}
	}

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, filter, req.PaginationRequest)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}

	res, err := s.render(ctx, recipes, viewerID)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}
	return res, domain.NewPaginationResponse(req.PaginationRequest, total), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	id, err := utils.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.detail(ctx, id, viewerID)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(req.Image) == "" {
		return domain.RecipeResponse{}, domain.FieldError("image", domain.ErrImageRequired)
	}

	values, err := s.ingredientValues(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := entities.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		Image:       imageKey,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, values); err != nil {
		s.deleteImage(ctx, imageKey)
		return domain.RecipeResponse{}, translateWriteError(err)
	}

	logging.Info().Str("recipe_id", recipe.ID.String()).Str("author_id", userID).Msg("recipe created")
	return s.detail(ctx, recipe.ID, userID)
}

// UpdateRecipe replaces every writable field. The image is kept when the
// request leaves it empty.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeWriteRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.ownRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	values, err := s.ingredientValues(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	oldImage := recipe.Image
	if strings.TrimSpace(req.Image) != "" {
		key, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.Image = key
	}

	recipe.Name = strings.TrimSpace(req.Name)
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, values); err != nil {
		if recipe.Image != oldImage {
			s.deleteImage(ctx, recipe.Image)
		}
		return domain.RecipeResponse{}, translateWriteError(err)
	}
	if recipe.Image != oldImage {
		s.deleteImage(ctx, oldImage)
	}

	return s.detail(ctx, recipe.ID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.ownRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	s.deleteImage(ctx, recipe.Image)

	logging.Info().Str("recipe_id", recipe.ID.String()).Msg("recipe deleted")
	return nil
}

// ownRecipe loads the recipe and checks that userID wrote it.
func (s *recipeService) ownRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	id, err := utils.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

// ingredientValues checks the requested ingredient lines and turns them into
// rows: at least one line, no repeated ingredient, every ingredient known.
func (s *recipeService) ingredientValues(ctx context.Context, items []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredientValue, error) {
	if len(items) == 0 {
		return nil, domain.FieldError("ingredients", domain.ErrNoIngredients)
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	values := make([]*entities.RecipeIngredientValue, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, domain.FieldError("ingredients", domain.ErrUnknownIngredient)
		}
		if _, dup := seen[id]; dup {
			return nil, domain.FieldError("ingredients", domain.ErrDuplicateIngredients)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		values = append(values, &entities.RecipeIngredientValue{IngredientID: id, Amount: item.Amount})
	}

	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, domain.FieldError("ingredients", domain.ErrUnknownIngredient)
	}
	return values, nil
}

func (s *recipeService) uploadImage(ctx context.Context, data string) (string, error) {
	file, err := storage.DecodeBase64Image(data)
	if err != nil {
		return "", domain.FieldError("image", err)
	}
	return s.s3.UploadFile(ctx, uuid.NewString(), file, imageFolder, storage.AllowImage...)
}

func (s *recipeService) deleteImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		logging.Warn().Err(err).Str("object_key", key).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) detail(ctx context.Context, id uuid.UUID, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	res, err := s.render(ctx, []*entities.Recipe{recipe}, viewerID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return res[0], nil
}

// render builds full views, resolving the viewer's favourite, cart and
// subscription flags with one query each.
func (s *recipeService) render(ctx context.Context, recipes []*entities.Recipe, viewerID string) ([]domain.RecipeResponse, error) {
	favourited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	following := map[uuid.UUID]bool{}

	if viewer, err := uuid.Parse(viewerID); err == nil && len(recipes) > 0 {
		recipeIDs := make([]uuid.UUID, 0, len(recipes))
		authorIDs := make([]uuid.UUID, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			if r.AuthorID != viewer {
				authorIDs = append(authorIDs, r.AuthorID)
			}
		}

		if favourited, err = s.recipeRepository.FavouritedAmong(ctx, viewer, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.recipeRepository.InCartAmong(ctx, viewer, recipeIDs); err != nil {
			return nil, err
		}
		if following, err = s.userRepository.FollowingAmong(ctx, viewer, authorIDs); err != nil {
			return nil, err
		}
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, NewRecipeResponse(r, favourited[r.ID], inCart[r.ID], following[r.AuthorID], s.s3))
	}
	return res, nil
}

func NewRecipeResponse(r *entities.Recipe, favourited, inCart, subscribed bool, s3 storage.AwsS3) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(r.IngredientValues))
	for _, v := range r.IngredientValues {
		if v.Ingredient == nil {
			continue
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			ID:              v.IngredientID.String(),
			Name:            v.Ingredient.Name,
			MeasurementUnit: v.Ingredient.MeasurementUnit,
			Amount:          v.Amount,
		})
	}
	sort.SliceStable(ingredients, func(i, j int) bool {
		return ingredients[i].Name < ingredients[j].Name
	})

	res := domain.RecipeResponse{
		ID:               r.ID.String(),
		Ingredients:      ingredients,
		IsFavorited:      favourited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            s3.GetPublicLinkKey(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}
	if r.Author != nil {
		res.Author = user.NewUserResponse(r.Author, subscribed, s3)
	}
	return res
}

// translateWriteError maps constraint violations raised while writing
// ingredient rows.
func translateWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.FieldError("ingredients", domain.ErrDuplicateIngredients)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.FieldError("ingredients", domain.ErrUnknownIngredient)
	default:
		return err
	}
}
