package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type AnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) (*types.Analysis, error)
	ListByReportID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) ([]*types.Analysis, error)
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	repoLog := baseLog.With("repo", "AnalysisRepo")
	return &analysisRepo{db: db, log: repoLog}
}

func (ar *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.Analysis) (*types.Analysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(analysis).Error; err != nil {
		return nil, err
	}
	return analysis, nil
}

func (ar *analysisRepo) ListByReportID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) ([]*types.Analysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Analysis
	if err := transaction.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
