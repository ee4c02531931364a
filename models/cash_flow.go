package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cash flow types. Every record is either money coming in or going out.
const (
	CashFlowTypeIn  = "CASH_IN"
	CashFlowTypeOut = "CASH_OUT"
)

// CashFlow is a single ledger entry owned by a user. Amount is stored in
// the smallest currency unit and must be positive.
type CashFlow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Type        string    `gorm:"size:32;not null" json:"type"`
	Source      string    `gorm:"size:255;not null" json:"source"`
	Label       string    `gorm:"size:255;not null" json:"label"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *CashFlow) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
