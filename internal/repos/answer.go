package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) ([]*types.Answer, error)
	// ListInRange returns the elder's answers to one question with
	// response_date in [from, to), ascending. Ties on response_date keep
	// insertion order via created_at then id.
	ListInRange(ctx context.Context, tx *gorm.DB, elderID, questionID uuid.UUID, from, to time.Time) ([]*types.Answer, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (ar *answerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(answers) == 0 {
		return []*types.Answer{}, nil
	}
	for _, a := range answers {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (ar *answerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Answer
	if len(answerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", answerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *answerRepo) ListInRange(ctx context.Context, tx *gorm.DB, elderID, questionID uuid.UUID, from, to time.Time) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Answer
	if err := transaction.WithContext(ctx).
		Where("elder_id = ? AND question_id = ? AND response_date >= ? AND response_date < ?", elderID, questionID, from, to).
		Order("response_date ASC, created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
