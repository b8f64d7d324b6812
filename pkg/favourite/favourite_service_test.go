package favourite

import (
	"context"
	"sync"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/testutil"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavourites(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	s3 := storage.NewMemory("http://media.test")
	service := NewFavouriteService(NewFavouriteRepository(db), recipe.NewRecipeRepository(db), s3)

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	soup := testutil.CreateRecipe(t, db, author, "Soup")

	t.Run("add returns the short view", func(t *testing.T) {
		res, err := service.AddFavourite(ctx, soup.ID.String(), reader.ID.String())
		require.NoError(t, err)
		assert.Equal(t, domain.RecipeShortResponse{
			ID:          soup.ID.String(),
			Name:        "Soup",
			Image:       s3.GetPublicLinkKey(soup.Image),
			CookingTime: 10,
		}, res)
	})

	t.Run("adding twice is rejected", func(t *testing.T) {
		_, err := service.AddFavourite(ctx, soup.ID.String(), reader.ID.String())
		assert.ErrorIs(t, err, domain.ErrAlreadyFavourited)

		var count int64
		require.NoError(t, db.Model(&entities.Favourite{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("authors may favourite their own recipes", func(t *testing.T) {
		_, err := service.AddFavourite(ctx, soup.ID.String(), author.ID.String())
		assert.NoError(t, err)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		_, err := service.AddFavourite(ctx, uuid.NewString(), reader.ID.String())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

		_, err = service.AddFavourite(ctx, "not-a-uuid", reader.ID.String())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

		assert.ErrorIs(t, service.RemoveFavourite(ctx, uuid.NewString(), reader.ID.String()), domain.ErrRecipeNotFound)
	})

	t.Run("remove then remove again", func(t *testing.T) {
		require.NoError(t, service.RemoveFavourite(ctx, soup.ID.String(), reader.ID.String()))
		assert.ErrorIs(t, service.RemoveFavourite(ctx, soup.ID.String(), reader.ID.String()), domain.ErrNotFavourited)

		favourited, err := NewFavouriteRepository(db).IsFavourited(ctx, author.ID, soup.ID)
		require.NoError(t, err)
		assert.True(t, favourited)
	})
}

// staleFavourites never sees an existing favourite, so every add reaches
// the unique index.
type staleFavourites struct {
	FavouriteRepository
}

func (staleFavourites) IsFavourited(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestConcurrentAddFavourite(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	service := NewFavouriteService(staleFavourites{NewFavouriteRepository(db)}, recipe.NewRecipeRepository(db), storage.NewMemory("http://media.test"))

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	soup := testutil.CreateRecipe(t, db, author, "Soup")

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = service.AddFavourite(ctx, soup.ID.String(), reader.ID.String())
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyFavourited)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&entities.Favourite{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
