package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LinkMapped struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	URLHash     string    `gorm:"size:15;not null;uniqueIndex:idx_link_mapped_hash" json:"url_hash"`
	OriginalURL string    `gorm:"size:256;not null;index" json:"original_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LinkMapped) TableName() string {
	return "link_mapped"
}

func (l *LinkMapped) BeforeCreate(_ *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
