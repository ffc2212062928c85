package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error)
	AttachToGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID, questionIDs []uuid.UUID) error
	// ListUnreportedByGuideID returns the guide's questions that have not yet
	// been consumed by a report, ordered by creation time then id.
	ListUnreportedByGuideID(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Question, error)
	// MarkReported flips is_reported to true. The update is conditional on the
	// current value being false, so the transition is one-way and repeating it
	// is harmless.
	MarkReported(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(questions) == 0 {
		return []*types.Question{}, nil
	}
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (qr *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Question
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) AttachToGuide(ctx context.Context, tx *gorm.DB, guideID uuid.UUID, questionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(questionIDs) == 0 {
		return nil
	}

	guide := types.ActivityGuide{ID: guideID}
	questions := make([]*types.Question, 0, len(questionIDs))
	for _, id := range questionIDs {
		questions = append(questions, &types.Question{ID: id})
	}
	return transaction.WithContext(ctx).
		Model(&guide).
		Association("Questions").
		Append(questions)
}

func (qr *questionRepo) ListUnreportedByGuideID(ctx context.Context, tx *gorm.DB, guideID uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Question
	if err := transaction.WithContext(ctx).
		Joins("JOIN guide_question gq ON gq.question_id = question.id").
		Where("gq.activity_guide_id = ? AND question.is_reported = ?", guideID, false).
		Order("question.created_at ASC, question.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) MarkReported(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ? AND is_reported = ?", questionID, false).
		Update("is_reported", true).Error
}
