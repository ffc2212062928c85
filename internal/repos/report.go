package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type ReportRepo interface {
	// Create inserts the report header. A concurrent insert for the same
	// (elder_id, year, week_number) hits the unique index and surfaces as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, tx *gorm.DB, report *types.Report) (*types.Report, error)
	GetByID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) (*types.Report, error)
	ListByElderID(ctx context.Context, tx *gorm.DB, elderID uuid.UUID) ([]*types.Report, error)
	UpdateMetadata(ctx context.Context, tx *gorm.DB, reportID uuid.UUID, metadata []byte) error
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	repoLog := baseLog.With("repo", "ReportRepo")
	return &reportRepo{db: db, log: repoLog}
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.Report) (*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (rr *reportRepo) GetByID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) (*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Report
	if err := transaction.WithContext(ctx).
		Where("id = ?", reportID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *reportRepo) ListByElderID(ctx context.Context, tx *gorm.DB, elderID uuid.UUID) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Report
	if err := transaction.WithContext(ctx).
		Where("elder_id = ?", elderID).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reportRepo) UpdateMetadata(ctx context.Context, tx *gorm.DB, reportID uuid.UUID, metadata []byte) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Report{}).
		Where("id = ?", reportID).
		Update("metadata", metadata).Error
}
