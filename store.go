package main

import (
	"delapp/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenStore is the authoritative record of which issued tokens are
// still live. A token whose row has been deleted is revoked no matter
// what its signature or expiry say.
type TokenStore interface {
	// Find returns the exact (userID, token) row, or nil when absent.
	Find(userID uuid.UUID, token string) *models.AuthToken
	// Create inserts a new row and returns it, or nil when the write
	// fails. Callers must treat nil as fatal for the request.
	Create(userID uuid.UUID, token string) *models.AuthToken
	// RevokeAll deletes every token row for the user. Idempotent.
	RevokeAll(userID uuid.UUID) error
}

type gormTokenStore struct {
	db *gorm.DB
}

func newTokenStore(gdb *gorm.DB) TokenStore {
	return &gormTokenStore{db: gdb}
}

func (s *gormTokenStore) Find(userID uuid.UUID, token string) *models.AuthToken {
	var at models.AuthToken
	if err := s.db.Where("user_id = ? AND token = ?", userID, token).First(&at).Error; err != nil {
		return nil
	}
	return &at
}

func (s *gormTokenStore) Create(userID uuid.UUID, token string) *models.AuthToken {
	at := models.AuthToken{UserID: userID, Token: token}
	if err := s.db.Create(&at).Error; err != nil {
		return nil
	}
	return &at
}

func (s *gormTokenStore) RevokeAll(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}

func getUserByEmail(email string) *models.User {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}
	return &user
}

func getUserByID(id uuid.UUID) *models.User {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil
	}
	return &user
}
