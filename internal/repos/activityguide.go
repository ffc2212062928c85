package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type ActivityGuideRepo interface {
	Create(ctx context.Context, tx *gorm.DB, guides []*types.ActivityGuide) ([]*types.ActivityGuide, error)
	// ListStudiedInRange returns studied guides for the elder whose created_at
	// falls in [from, to), ordered by creation time then id for determinism.
	ListStudiedInRange(ctx context.Context, tx *gorm.DB, elderID uuid.UUID, from, to time.Time) ([]*types.ActivityGuide, error)
}

type activityGuideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityGuideRepo(db *gorm.DB, baseLog *logger.Logger) ActivityGuideRepo {
	repoLog := baseLog.With("repo", "ActivityGuideRepo")
	return &activityGuideRepo{db: db, log: repoLog}
}

func (gr *activityGuideRepo) Create(ctx context.Context, tx *gorm.DB, guides []*types.ActivityGuide) ([]*types.ActivityGuide, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(guides) == 0 {
		return []*types.ActivityGuide{}, nil
	}
	for _, g := range guides {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&guides).Error; err != nil {
		return nil, err
	}
	return guides, nil
}

func (gr *activityGuideRepo) ListStudiedInRange(ctx context.Context, tx *gorm.DB, elderID uuid.UUID, from, to time.Time) ([]*types.ActivityGuide, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.ActivityGuide
	if err := transaction.WithContext(ctx).
		Where("elder_id = ? AND have_studied = ? AND created_at >= ? AND created_at < ?", elderID, true, from, to).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
