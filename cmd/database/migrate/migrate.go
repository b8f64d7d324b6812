package migration

import (
	"fmt"

	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"

	"gorm.io/gorm"
)

// Migrate creates or updates every table. Parents are migrated before the
// rows that reference them.
func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"user follow", &entities.UserFollow{}},
		{"revoked token", &entities.RevokedToken{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient value", &entities.RecipeIngredientValue{}},
		{"favourite", &entities.Favourite{}},
		{"cart", &entities.Cart{}},
		{"link mapped", &entities.LinkMapped{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}
