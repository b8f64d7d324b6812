package shortlink

import (
	"context"

	"Foodgram-Backend/entities"

	"gorm.io/gorm"
)

type (
	ShortLinkRepository interface {
		CreateLink(ctx context.Context, link *entities.LinkMapped) error
		GetLinkByHash(ctx context.Context, hash string) (*entities.LinkMapped, error)
		GetLinkByURL(ctx context.Context, originalURL string) (*entities.LinkMapped, error)
		HashExists(ctx context.Context, hash string) (bool, error)
	}

	shortLinkRepository struct {
		db *gorm.DB
	}
)

func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &shortLinkRepository{db: db}
}

func (r *shortLinkRepository) CreateLink(ctx context.Context, link *entities.LinkMapped) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shortLinkRepository) GetLinkByHash(ctx context.Context, hash string) (*entities.LinkMapped, error) {
	var link entities.LinkMapped
	if err := r.db.WithContext(ctx).Where("url_hash = ?", hash).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinkByURL returns the oldest mapping for originalURL.
func (r *shortLinkRepository) GetLinkByURL(ctx context.Context, originalURL string) (*entities.LinkMapped, error) {
	var link entities.LinkMapped
	if err := r.db.WithContext(ctx).
		Where("original_url = ?", originalURL).
		Order("created_at asc").
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shortLinkRepository) HashExists(ctx context.Context, hash string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.LinkMapped{}).
		Where("url_hash = ?", hash).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
