package main

import (
	"context"
	"os"

	"Foodgram-Backend/cmd/database/seed"

	"gorm.io/gorm"
)

func loadSeed(ctx context.Context, db *gorm.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = seed.LoadIngredients(ctx, db, f)
	return err
}
