package repos

import (
	"context"
	"testing"
	"time"

	"github.com/saemcare/saem-backend/internal/types"
)

func TestListInRangeOrdersAndFilters(t *testing.T) {
	gdb, log := newTestDB(t)
	answerRepo := NewAnswerRepo(gdb, log)
	elderRepo := NewElderRepo(gdb, log)
	questionRepo := NewQuestionRepo(gdb, log)
	ctx := context.Background()

	elders, err := elderRepo.Create(ctx, nil, []*types.Elder{{Name: "Kim"}})
	if err != nil {
		t.Fatalf("create elder: %v", err)
	}
	elder := elders[0]
	questions, err := questionRepo.Create(ctx, nil, []*types.Question{{Text: "How are you feeling?"}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	q := questions[0]

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	if _, err := answerRepo.Create(ctx, nil, []*types.Answer{
		{ElderID: elder.ID, QuestionID: q.ID, Response: "late", ResponseDate: from.Add(5 * 24 * time.Hour)},
		{ElderID: elder.ID, QuestionID: q.ID, Response: "early", ResponseDate: from.Add(2 * time.Hour)},
		{ElderID: elder.ID, QuestionID: q.ID, Response: "before window", ResponseDate: from.Add(-time.Hour)},
		{ElderID: elder.ID, QuestionID: q.ID, Response: "after window", ResponseDate: to.Add(time.Hour)},
	}); err != nil {
		t.Fatalf("create answers: %v", err)
	}

	got, err := answerRepo.ListInRange(ctx, nil, elder.ID, q.ID, from, to)
	if err != nil {
		t.Fatalf("ListInRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 answers in window, got %d", len(got))
	}
	if got[0].Response != "early" || got[1].Response != "late" {
		t.Fatalf("answers out of order: %q then %q", got[0].Response, got[1].Response)
	}
}

func TestListInRangeBreaksResponseDateTiesByInsertion(t *testing.T) {
	gdb, log := newTestDB(t)
	answerRepo := NewAnswerRepo(gdb, log)
	elderRepo := NewElderRepo(gdb, log)
	questionRepo := NewQuestionRepo(gdb, log)
	ctx := context.Background()

	elders, err := elderRepo.Create(ctx, nil, []*types.Elder{{Name: "Kim"}})
	if err != nil {
		t.Fatalf("create elder: %v", err)
	}
	elder := elders[0]
	questions, err := questionRepo.Create(ctx, nil, []*types.Question{{Text: "How are you feeling?"}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	q := questions[0]

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	sameMoment := from.Add(24 * time.Hour)

	// Inserted newest-first to prove ordering follows created_at, not the
	// physical insert sequence.
	if _, err := answerRepo.Create(ctx, nil, []*types.Answer{
		{ElderID: elder.ID, QuestionID: q.ID, Response: "second", ResponseDate: sameMoment, CreatedAt: from.Add(2 * time.Minute)},
		{ElderID: elder.ID, QuestionID: q.ID, Response: "first", ResponseDate: sameMoment, CreatedAt: from.Add(1 * time.Minute)},
	}); err != nil {
		t.Fatalf("create answers: %v", err)
	}

	got, err := answerRepo.ListInRange(ctx, nil, elder.ID, q.ID, from, to)
	if err != nil {
		t.Fatalf("ListInRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(got))
	}
	if got[0].Response != "first" || got[1].Response != "second" {
		t.Fatalf("tie not broken by insertion order: %q then %q", got[0].Response, got[1].Response)
	}
}
