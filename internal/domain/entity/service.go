package entity

import (
	"time"

	"gorm.io/gorm"
)

// Service represents a concierge service offered in the catalog
type Service struct {
	ID         uint
	Code       string
	Name       string
	DefaultFee float64
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
}
