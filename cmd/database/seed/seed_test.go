package seed

import (
	"context"
	"strings"
	"testing"

	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIngredients(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	data := `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"},
		{"name": "flour", "measurement_unit": "g"},
		{"name": "  ", "measurement_unit": "g"},
		{"name": "` + strings.Repeat("x", 129) + `", "measurement_unit": "g"},
		{"name": "salt", "measurement_unit": "` + strings.Repeat("u", 65) + `"}
	]`

	res, err := LoadIngredients(ctx, db, strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Existing: 1, Skipped: 3}, res)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// loading the same file again only finds existing rows
	res, err = LoadIngredients(ctx, db, strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 0, Existing: 3, Skipped: 3}, res)
}

func TestLoadIngredientsRejectsMalformedInput(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := LoadIngredients(context.Background(), db, strings.NewReader(`{"name": "flour"}`))
	assert.Error(t, err)
}
