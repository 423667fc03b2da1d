package repository

import (
	"context"
	"time"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormServiceRepository implements the ServiceRepository interface
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GORM service catalog repository
func NewGormServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &GormServiceRepository{
		db: db,
	}
}

// Services GORM model for database mapping
type Services struct {
	ID         uint           `gorm:"primaryKey"`
	Code       string         `gorm:"column:code;unique"`
	Name       string         `gorm:"column:name"`
	DefaultFee float64        `gorm:"column:default_fee"`
	Active     bool           `gorm:"column:active"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name
func (Services) TableName() string {
	return "m_services"
}

// ListActive returns all services currently offered
func (r *GormServiceRepository) ListActive(ctx context.Context) ([]*entity.Service, error) {
	var rows []Services
	result := r.db.WithContext(ctx).Where("active = ?", true).Order("code").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	services := make([]*entity.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, toServiceEntity(row))
	}
	return services, nil
}

// GetByCode finds a service by its code
func (r *GormServiceRepository) GetByCode(ctx context.Context, code string) (*entity.Service, error) {
	var row Services
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return toServiceEntity(row), nil
}

func toServiceEntity(row Services) *entity.Service {
	return &entity.Service{
		ID:         row.ID,
		Code:       row.Code,
		Name:       row.Name,
		DefaultFee: row.DefaultFee,
		Active:     row.Active,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
		DeletedAt:  row.DeletedAt,
	}
}
