package entities

import (
	"Foodgram-Backend/domain"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:254;not null;uniqueIndex:idx_users_email" json:"email"`
	Username  string    `gorm:"size:150;not null;uniqueIndex:idx_users_username" json:"username"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `gorm:"size:10;not null;default:user" json:"role"`

	Timestamp
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	return nil
}

// UserFollow is a directed subscription of UserID to FollowingID.
type UserFollow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_follows_pair;check:chk_user_follows_not_self,user_id <> following_id" json:"user_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_follows_pair;index" json:"following_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	User      *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

func (f *UserFollow) BeforeCreate(_ *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

// RevokedToken remembers access tokens that were logged out before expiry.
type RevokedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
