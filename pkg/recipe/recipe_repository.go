package recipe

import (
	"context"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeFilter narrows GetRecipes. Nil fields are not applied.
	RecipeFilter struct {
		AuthorID    *uuid.UUID
		FavouriteOf *uuid.UUID
		InCartOf    *uuid.UUID
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, values []*entities.RecipeIngredientValue) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, values []*entities.RecipeIngredientValue) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter RecipeFilter, page domain.PaginationRequest) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
		FavouritedAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		InCartAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, values []*entities.RecipeIngredientValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertValues(tx, recipe.ID, values)
	})
}

// UpdateRecipe overwrites the recipe columns and replaces its whole
// ingredient set.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, values []*entities.RecipeIngredientValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{ID: recipe.ID}).
			Select("name", "text", "image", "cooking_time", "updated_at").
			Updates(recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeIngredientValue{}).Error; err != nil {
			return err
		}
		return insertValues(tx, recipe.ID, values)
	})
}

func insertValues(tx *gorm.DB, recipeID uuid.UUID, values []*entities.RecipeIngredientValue) error {
	for _, v := range values {
		v.ID = uuid.Nil
		v.RecipeID = recipeID
	}
	if len(values) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&values).Error
}

// DeleteRecipe removes the recipe together with its ingredient values and
// every favourite and cart row pointing at it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []any{
			&entities.RecipeIngredientValue{},
			&entities.Favourite{},
			&entities.Cart{},
		}
		for _, model := range dependents {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetail(ctx).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter RecipeFilter, page domain.PaginationRequest) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.filtered(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.filtered(r.withDetail(ctx), filter).
		Order("recipes.pub_date desc, recipes.id desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) withDetail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("IngredientValues").
		Preload("IngredientValues.Ingredient")
}

func (r *recipeRepository) filtered(query *gorm.DB, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavouriteOf != nil {
		query = query.Where("recipes.id IN (?)", r.db.
			Model(&entities.Favourite{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.FavouriteOf))
	}
	if filter.InCartOf != nil {
		query = query.Where("recipes.id IN (?)", r.db.
			Model(&entities.Cart{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.InCartOf))
	}
	return query
}

// GetRecipesByAuthor returns the newest recipes first. A limit of zero or
// less returns all of them.
func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthor(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func (r *recipeRepository) FavouritedAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.markedAmong(ctx, &entities.Favourite{}, userID, recipeIDs)
}

func (r *recipeRepository) InCartAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.markedAmong(ctx, &entities.Cart{}, userID, recipeIDs)
}

// markedAmong reports which recipeIDs have a (user, recipe) row in model's
// table.
func (r *recipeRepository) markedAmong(ctx context.Context, model any, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
