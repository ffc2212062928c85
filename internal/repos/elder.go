package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type ElderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, elders []*types.Elder) ([]*types.Elder, error)
	GetByID(ctx context.Context, tx *gorm.DB, elderID uuid.UUID) (*types.Elder, error)
}

type elderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElderRepo(db *gorm.DB, baseLog *logger.Logger) ElderRepo {
	repoLog := baseLog.With("repo", "ElderRepo")
	return &elderRepo{db: db, log: repoLog}
}

func (er *elderRepo) Create(ctx context.Context, tx *gorm.DB, elders []*types.Elder) ([]*types.Elder, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(elders) == 0 {
		return []*types.Elder{}, nil
	}
	for _, e := range elders {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&elders).Error; err != nil {
		return nil, err
	}
	return elders, nil
}

// GetByID returns (nil, nil) when the elder does not exist.
func (er *elderRepo) GetByID(ctx context.Context, tx *gorm.DB, elderID uuid.UUID) (*types.Elder, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Elder
	if err := transaction.WithContext(ctx).
		Where("id = ?", elderID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
