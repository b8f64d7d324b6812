package ingredient

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIngredients(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "sour cream", "ml")
	testutil.CreateIngredient(t, db, "butter", "g")
	testutil.CreateIngredient(t, db, "50%_cocoa", "g")

	names := func(items []domain.IngredientResponse) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.Name)
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"s", []string{"Sugar", "salt", "sour cream"}},
		{"SO", []string{"sour cream"}},
		{"  su ", []string{"Sugar"}},
		{"tter", []string{}},
		{"50%", []string{"50%_cocoa"}},
		{"5_", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := svc.SearchIngredients(ctx, tt.query)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(res))
		})
	}

	all, err := svc.SearchIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGetIngredient(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()
	flour := testutil.CreateIngredient(t, db, "flour", "g")

	res, err := svc.GetIngredient(ctx, flour.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.IngredientResponse{ID: flour.ID.String(), Name: "flour", MeasurementUnit: "g"}, res)

	_, err = svc.GetIngredient(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = svc.GetIngredient(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestCreateIngredient(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	res, err := svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: " egg ", MeasurementUnit: "pcs"})
	require.NoError(t, err)
	assert.Equal(t, "egg", res.Name)

	_, err = svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "egg", MeasurementUnit: "pcs"})
	assert.ErrorIs(t, err, domain.ErrIngredientAlreadyExists)

	// same name with another unit is a different ingredient
	_, err = svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "egg", MeasurementUnit: "g"})
	assert.NoError(t, err)
}
