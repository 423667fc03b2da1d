package repository

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// ServiceRepository defines the interface for the concierge service catalog
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]*entity.Service, error)
	GetByCode(ctx context.Context, code string) (*entity.Service, error)
}
