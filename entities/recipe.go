// File: entities/recipe.go
package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	Image       string    `json:"image,omitempty"`
	CookingTime int       `gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1 AND cooking_time <= 32000" json:"cooking_time"`
	PubDate     time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author           *User                    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	IngredientValues []*RecipeIngredientValue `gorm:"foreignKey:RecipeID"`
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// RecipeIngredientValue is the quantity join between a recipe and an
// ingredient. A recipe lists each ingredient at most once.
type RecipeIngredientValue struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair;index" json:"ingredient_id"`
	Amount       int       `gorm:"not null;check:chk_recipe_values_amount,amount >= 1 AND amount <= 32000" json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (v *RecipeIngredientValue) BeforeCreate(_ *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

type Favourite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (f *Favourite) BeforeCreate(_ *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
