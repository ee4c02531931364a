package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthToken records an issued bearer token. The row's existence is the
// authority for the token being live: deleting it revokes the token even
// while its signature and expiry would still validate.
type AuthToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;index:idx_auth_tokens_user_token" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;index:idx_auth_tokens_user_token" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
