package shortlink

import (
	"context"
	"strings"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/testutil"
	"Foodgram-Backend/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appURL = "https://foodgram.test"

// sequence hands out the given hashes in order, repeating the last one.
func sequence(hashes ...string) HashGenerator {
	i := 0
	return func() string {
		h := hashes[min(i, len(hashes)-1)]
		i++
		return h
	}
}

func TestRandomHash(t *testing.T) {
	for range 200 {
		h := RandomHash()
		assert.GreaterOrEqual(t, len(h), domain.MinShortHashLength)
		assert.LessOrEqual(t, len(h), domain.MaxShortHashLength)
		assert.Empty(t, strings.Trim(h, hashAlphabet), h)
	}
}

func TestGetRecipeLink(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	service := NewShortLinkService(NewShortLinkRepository(db), recipe.NewRecipeRepository(db), appURL+"/",
		WithGenerator(sequence("AbCd1234", "ZzZz9999")))

	author := testutil.CreateUser(t, db, "author")
	soup := testutil.CreateRecipe(t, db, author, "Soup")

	res, err := service.GetRecipeLink(ctx, soup.ID.String())
	require.NoError(t, err)
	assert.Equal(t, appURL+"/s/AbCd1234/", res.ShortLink)

	again, err := service.GetRecipeLink(ctx, soup.ID.String())
	require.NoError(t, err)
	assert.Equal(t, res, again)

	target, err := service.Resolve(ctx, "AbCd1234")
	require.NoError(t, err)
	assert.Equal(t, appURL+"/recipes/"+soup.ID.String(), target)

	_, err = service.GetRecipeLink(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestShorten(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewShortLinkRepository(db)
	recipes := recipe.NewRecipeRepository(db)

	first := NewShortLinkService(repo, recipes, appURL, WithGenerator(sequence("taken123")))
	_, err := first.Shorten(ctx, appURL+"/recipes/1")
	require.NoError(t, err)

	t.Run("collision is retried", func(t *testing.T) {
		service := NewShortLinkService(repo, recipes, appURL, WithGenerator(sequence("taken123", "taken123", "fresh456")))
		link, err := service.Shorten(ctx, appURL+"/recipes/2")
		require.NoError(t, err)
		assert.Equal(t, "fresh456", link.URLHash)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		service := NewShortLinkService(repo, recipes, appURL, WithGenerator(sequence("taken123")), WithMaxAttempts(3))
		_, err := service.Shorten(ctx, appURL+"/recipes/3")
		assert.ErrorIs(t, err, domain.ErrShortLinkExhausted)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := first.Shorten(ctx, appURL+"/"+strings.Repeat("a", domain.MaxShortURLLength))
		assert.ErrorIs(t, err, domain.ErrShortLinkTooLong)
	})

	t.Run("unknown hash", func(t *testing.T) {
		for _, hash := range []string{"", "nothere1", strings.Repeat("x", domain.MaxShortHashLength+1)} {
			_, err := first.Resolve(ctx, hash)
			assert.ErrorIs(t, err, domain.ErrShortLinkNotFound, hash)
		}
	})
}
