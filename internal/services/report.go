package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/apierr"
	redisbus "github.com/saemcare/saem-backend/internal/clients/redis"
	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/repos"
	"github.com/saemcare/saem-backend/internal/types"
)

// ReportService builds weekly answer-drift reports. For one (elder, year,
// week) request it selects the studied guides of that week, pairs each
// unreported question's first and last answer, scores the pair by embedding
// cosine similarity, and persists the results as one report.
//
// Persistence ordering: all scoring happens before anything is written, so a
// report row only ever exists with at least one analysis behind it. Each
// scored question is then committed in its own transaction (analysis insert +
// reported flag), so an aborted run keeps the completed questions valid and
// leaves skipped ones eligible for a later week.
type ReportService interface {
	CreateReport(ctx context.Context, elderID uuid.UUID, year, weekNumber int) (*types.ReportWithAnalyses, error)
	GetReports(ctx context.Context, elderID uuid.UUID) ([]*types.ReportWithAnalyses, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	elderRepo    repos.ElderRepo
	guideRepo    repos.ActivityGuideRepo
	questionRepo repos.QuestionRepo
	answerRepo   repos.AnswerRepo
	reportRepo   repos.ReportRepo
	analysisRepo repos.AnalysisRepo
	ai           OpenAIClient
	bus          redisbus.ReportBus

	embedConcurrency int
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	elderRepo repos.ElderRepo,
	guideRepo repos.ActivityGuideRepo,
	questionRepo repos.QuestionRepo,
	answerRepo repos.AnswerRepo,
	reportRepo repos.ReportRepo,
	analysisRepo repos.AnalysisRepo,
	ai OpenAIClient,
	bus redisbus.ReportBus,
	embedConcurrency int,
) ReportService {
	serviceLog := log.With("service", "ReportService")
	if embedConcurrency < 1 {
		embedConcurrency = 4
	}
	return &reportService{
		db:               db,
		log:              serviceLog,
		elderRepo:        elderRepo,
		guideRepo:        guideRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		reportRepo:       reportRepo,
		analysisRepo:     analysisRepo,
		ai:               ai,
		bus:              bus,
		embedConcurrency: embedConcurrency,
	}
}

// scoredQuestion is one question that made it through pairing and scoring and
// is ready to persist.
type scoredQuestion struct {
	question    *types.Question
	firstAnswer *types.Answer
	lastAnswer  *types.Answer
	similarity  float64
}

func (rs *reportService) CreateReport(ctx context.Context, elderID uuid.UUID, year, weekNumber int) (*types.ReportWithAnalyses, error) {
	windowStart, windowEnd, err := weekWindow(year, weekNumber)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "INVALID_WEEK", err)
	}

	elder, err := rs.elderRepo.GetByID(ctx, nil, elderID)
	if err != nil {
		return nil, fmt.Errorf("fetch elder: %w", err)
	}
	if elder == nil {
		return nil, apierr.NotFound(fmt.Errorf("elder not found"))
	}

	eligible, err := rs.selectEligibleQuestions(ctx, elderID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, apierr.NoData(fmt.Errorf("no new questions available for the report"))
	}

	scored, meta, err := rs.scoreQuestions(ctx, elderID, eligible, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	rs.log.Info("Weekly scoring finished",
		"elder_id", elderID.String(),
		"year", year,
		"week_number", weekNumber,
		"eligible", meta.EligibleQuestions,
		"scored", meta.ScoredQuestions,
		"skipped_no_pair", meta.SkippedNoPair,
		"skipped_embedding", meta.SkippedEmbedding,
	)
	if len(scored) == 0 {
		// Nothing persisted on this path: skipped questions stay eligible.
		return nil, apierr.NoData(fmt.Errorf("no question had two answers in the requested week"))
	}

	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal report metadata: %w", err)
	}
	report, err := rs.reportRepo.Create(ctx, nil, &types.Report{
		ElderID:    elderID,
		Year:       year,
		WeekNumber: weekNumber,
		Metadata:   datatypes.JSON(metaRaw),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict(fmt.Errorf("report already exists for elder week %d-W%d", year, weekNumber))
		}
		return nil, fmt.Errorf("create report: %w", err)
	}

	details := make([]types.AnalysisDetail, 0, len(scored))
	for _, sq := range scored {
		detail, err := rs.persistAnalysis(ctx, elderID, report.ID, sq)
		if err != nil {
			// Already-committed questions stay valid; this one remains
			// unreported and eligible next week.
			rs.log.Error("Failed to persist analysis",
				"elder_id", elderID.String(),
				"report_id", report.ID.String(),
				"question_id", sq.question.ID.String(),
				"error", err,
			)
			continue
		}
		details = append(details, *detail)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("all analysis writes failed for report %s", report.ID)
	}

	out := &types.ReportWithAnalyses{
		ID:         report.ID,
		ElderID:    report.ElderID,
		Year:       report.Year,
		WeekNumber: report.WeekNumber,
		CreatedAt:  report.CreatedAt,
		Analyses:   details,
	}
	rs.publishCreated(ctx, out)
	return out, nil
}

// selectEligibleQuestions unions the questions of the week's studied guides,
// in guide creation order then question creation order, dropping duplicates
// and questions already consumed by an earlier report.
func (rs *reportService) selectEligibleQuestions(ctx context.Context, elderID uuid.UUID, from, to time.Time) ([]*types.Question, error) {
	guides, err := rs.guideRepo.ListStudiedInRange(ctx, nil, elderID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list studied guides: %w", err)
	}
	if len(guides) == 0 {
		return nil, apierr.NoData(fmt.Errorf("no studied guides found for this week"))
	}

	seen := make(map[uuid.UUID]struct{})
	var eligible []*types.Question
	for _, guide := range guides {
		questions, err := rs.questionRepo.ListUnreportedByGuideID(ctx, nil, guide.ID)
		if err != nil {
			return nil, fmt.Errorf("list questions for guide %s: %w", guide.ID, err)
		}
		for _, q := range questions {
			if _, ok := seen[q.ID]; ok {
				continue
			}
			seen[q.ID] = struct{}{}
			eligible = append(eligible, q)
		}
	}
	return eligible, nil
}

// scoreQuestions resolves each question's answer pair and scores it. Answer
// fetching is sequential; the embedding calls, the only suspension point, run
// on a bounded worker pool. Output order follows the eligible order.
func (rs *reportService) scoreQuestions(ctx context.Context, elderID uuid.UUID, eligible []*types.Question, from, to time.Time) ([]*scoredQuestion, types.ReportMetadata, error) {
	meta := types.ReportMetadata{EligibleQuestions: len(eligible)}

	type pairedQuestion struct {
		question *types.Question
		first    *types.Answer
		last     *types.Answer
	}
	var paired []pairedQuestion
	for _, q := range eligible {
		answers, err := rs.answerRepo.ListInRange(ctx, nil, elderID, q.ID, from, to)
		if err != nil {
			return nil, meta, fmt.Errorf("list answers for question %s: %w", q.ID, err)
		}
		if len(answers) < 2 {
			meta.SkippedNoPair++
			continue
		}
		paired = append(paired, pairedQuestion{question: q, first: answers[0], last: answers[len(answers)-1]})
	}

	results := make([]*scoredQuestion, len(paired))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rs.embedConcurrency)
	for i, pq := range paired {
		g.Go(func() error {
			vecs, err := rs.ai.Embed(gctx, []string{pq.first.Response, pq.last.Response})
			if err != nil {
				if errors.Is(err, ErrEmbeddingUnavailable) {
					rs.log.Warn("Skipping question, embedding unavailable",
						"question_id", pq.question.ID.String(),
						"error", err,
					)
					return nil
				}
				return err
			}
			if len(vecs) != 2 {
				return fmt.Errorf("expected 2 embeddings, got %d", len(vecs))
			}
			results[i] = &scoredQuestion{
				question:    pq.question,
				firstAnswer: pq.first,
				lastAnswer:  pq.last,
				similarity:  similarityPercent(vecs[0], vecs[1]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, meta, err
	}

	scored := make([]*scoredQuestion, 0, len(results))
	for _, r := range results {
		if r == nil {
			meta.SkippedEmbedding++
			continue
		}
		scored = append(scored, r)
	}
	meta.ScoredQuestions = len(scored)
	return scored, meta, nil
}

// persistAnalysis commits one question's unit of work: the analysis row and
// the one-way reported flag, atomically.
func (rs *reportService) persistAnalysis(ctx context.Context, elderID, reportID uuid.UUID, sq *scoredQuestion) (*types.AnalysisDetail, error) {
	var analysis *types.Analysis
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := rs.analysisRepo.Create(ctx, tx, &types.Analysis{
			ElderID:       elderID,
			QuestionID:    sq.question.ID,
			FirstAnswerID: sq.firstAnswer.ID,
			LastAnswerID:  sq.lastAnswer.ID,
			Similarity:    sq.similarity,
			ReportID:      reportID,
		})
		if err != nil {
			return err
		}
		if err := rs.questionRepo.MarkReported(ctx, tx, sq.question.ID); err != nil {
			return err
		}
		analysis = created
		return nil
	}); err != nil {
		return nil, err
	}

	return &types.AnalysisDetail{
		ID:            analysis.ID,
		QuestionID:    sq.question.ID,
		Question:      sq.question.Text,
		FirstAnswerID: sq.firstAnswer.ID,
		FirstAnswer:   sq.firstAnswer.Response,
		LastAnswerID:  sq.lastAnswer.ID,
		LastAnswer:    sq.lastAnswer.Response,
		Similarity:    analysis.Similarity,
		ReportID:      reportID,
		CreatedAt:     analysis.CreatedAt,
	}, nil
}

func (rs *reportService) GetReports(ctx context.Context, elderID uuid.UUID) ([]*types.ReportWithAnalyses, error) {
	elder, err := rs.elderRepo.GetByID(ctx, nil, elderID)
	if err != nil {
		return nil, fmt.Errorf("fetch elder: %w", err)
	}
	if elder == nil {
		return nil, apierr.NotFound(fmt.Errorf("elder not found"))
	}

	reports, err := rs.reportRepo.ListByElderID(ctx, nil, elderID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]*types.ReportWithAnalyses, 0, len(reports))
	for _, report := range reports {
		analyses, err := rs.analysisRepo.ListByReportID(ctx, nil, report.ID)
		if err != nil {
			return nil, fmt.Errorf("list analyses for report %s: %w", report.ID, err)
		}
		details, err := rs.hydrateAnalyses(ctx, analyses)
		if err != nil {
			return nil, err
		}
		out = append(out, &types.ReportWithAnalyses{
			ID:         report.ID,
			ElderID:    report.ElderID,
			Year:       report.Year,
			WeekNumber: report.WeekNumber,
			CreatedAt:  report.CreatedAt,
			Analyses:   details,
		})
	}
	return out, nil
}

// hydrateAnalyses joins analyses to question text and both answer texts with
// two batched lookups instead of a self-referencing aliased join.
func (rs *reportService) hydrateAnalyses(ctx context.Context, analyses []*types.Analysis) ([]types.AnalysisDetail, error) {
	questionIDs := make([]uuid.UUID, 0, len(analyses))
	answerIDs := make([]uuid.UUID, 0, 2*len(analyses))
	for _, a := range analyses {
		questionIDs = append(questionIDs, a.QuestionID)
		answerIDs = append(answerIDs, a.FirstAnswerID, a.LastAnswerID)
	}

	questions, err := rs.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	questionText := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		questionText[q.ID] = q.Text
	}

	answers, err := rs.answerRepo.GetByIDs(ctx, nil, answerIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch answers: %w", err)
	}
	answerText := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		answerText[a.ID] = a.Response
	}

	details := make([]types.AnalysisDetail, 0, len(analyses))
	for _, a := range analyses {
		details = append(details, types.AnalysisDetail{
			ID:            a.ID,
			QuestionID:    a.QuestionID,
			Question:      questionText[a.QuestionID],
			FirstAnswerID: a.FirstAnswerID,
			FirstAnswer:   answerText[a.FirstAnswerID],
			LastAnswerID:  a.LastAnswerID,
			LastAnswer:    answerText[a.LastAnswerID],
			Similarity:    a.Similarity,
			ReportID:      a.ReportID,
			CreatedAt:     a.CreatedAt,
		})
	}
	return details, nil
}

func (rs *reportService) publishCreated(ctx context.Context, report *types.ReportWithAnalyses) {
	if rs.bus == nil {
		return
	}
	event := redisbus.ReportCreatedEvent{
		ReportID:      report.ID,
		ElderID:       report.ElderID,
		Year:          report.Year,
		WeekNumber:    report.WeekNumber,
		AnalysisCount: len(report.Analyses),
		CreatedAt:     report.CreatedAt,
	}
	if err := rs.bus.PublishReportCreated(ctx, event); err != nil {
		rs.log.Warn("Failed to publish report.created event",
			"report_id", report.ID.String(),
			"error", err,
		)
	}
}
