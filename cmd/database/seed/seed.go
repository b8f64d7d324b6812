package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type ingredientRecord struct {
	Name            string `json:"name" validate:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
}

// Result counts what LoadIngredients did.
type Result struct {
	Created  int
	Existing int
	Skipped  int
}

// LoadIngredients reads a JSON array of {name, measurement_unit} objects and
// inserts every pair that is not in the catalog yet. Records that would not
// pass ingredient validation (blank or too long) are skipped.
func LoadIngredients(ctx context.Context, db *gorm.DB, r io.Reader) (Result, error) {
	var records []ingredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return Result{}, fmt.Errorf("decode ingredients: %w", err)
	}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			name := strings.TrimSpace(rec.Name)
			unit := strings.TrimSpace(rec.MeasurementUnit)
			if err := utils.ValidateStruct(ingredientRecord{Name: name, MeasurementUnit: unit}); err != nil {
				logging.Debug().Err(err).Str("name", name).Msg("skipping ingredient")
				res.Skipped++
				continue
			}

			ingredient := entities.Ingredient{}
			q := tx.Where(entities.Ingredient{Name: name, MeasurementUnit: unit}).FirstOrCreate(&ingredient)
			if q.Error != nil {
				return fmt.Errorf("save ingredient %q: %w", name, q.Error)
			}
			if q.RowsAffected > 0 {
				res.Created++
			} else {
				res.Existing++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logging.Info().
		Int("created", res.Created).
		Int("existing", res.Existing).
		Int("skipped", res.Skipped).
		Msg("ingredients loaded")
	return res, nil
}
