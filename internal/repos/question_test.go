package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/saemcare/saem-backend/internal/types"
)

func TestMarkReportedIsOneWayAndIdempotent(t *testing.T) {
	gdb, log := newTestDB(t)
	repo := NewQuestionRepo(gdb, log)
	ctx := context.Background()

	questions, err := repo.Create(ctx, nil, []*types.Question{{Text: "How are you feeling?"}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	q := questions[0]

	for i := 0; i < 3; i++ {
		if err := repo.MarkReported(ctx, nil, q.ID); err != nil {
			t.Fatalf("MarkReported run %d: %v", i, err)
		}
	}

	reloaded, err := repo.GetByIDs(ctx, nil, []uuid.UUID{q.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("reload question: %v", err)
	}
	if !reloaded[0].IsReported {
		t.Fatal("question should be reported")
	}
}

func TestListUnreportedByGuideIDFiltersAndOrders(t *testing.T) {
	gdb, log := newTestDB(t)
	questionRepo := NewQuestionRepo(gdb, log)
	guideRepo := NewActivityGuideRepo(gdb, log)
	elderRepo := NewElderRepo(gdb, log)
	ctx := context.Background()

	elders, err := elderRepo.Create(ctx, nil, []*types.Elder{{Name: "Kim"}})
	if err != nil {
		t.Fatalf("create elder: %v", err)
	}
	guides, err := guideRepo.Create(ctx, nil, []*types.ActivityGuide{{
		ElderID:     elders[0].ID,
		Title:       "memory exercise",
		HaveStudied: true,
	}})
	if err != nil {
		t.Fatalf("create guide: %v", err)
	}
	guide := guides[0]

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created, err := questionRepo.Create(ctx, nil, []*types.Question{
		{Text: "third", CreatedAt: base.Add(3 * time.Hour)},
		{Text: "first", CreatedAt: base.Add(1 * time.Hour)},
		{Text: "second", CreatedAt: base.Add(2 * time.Hour)},
		{Text: "already reported", IsReported: true, CreatedAt: base},
	})
	if err != nil {
		t.Fatalf("create questions: %v", err)
	}
	ids := make([]uuid.UUID, 0, len(created))
	for _, q := range created {
		ids = append(ids, q.ID)
	}
	if err := questionRepo.AttachToGuide(ctx, nil, guide.ID, ids); err != nil {
		t.Fatalf("attach questions: %v", err)
	}

	// A question on no guide must not leak in.
	if _, err := questionRepo.Create(ctx, nil, []*types.Question{{Text: "unattached"}}); err != nil {
		t.Fatalf("create unattached question: %v", err)
	}

	got, err := questionRepo.ListUnreportedByGuideID(ctx, nil, guide.ID)
	if err != nil {
		t.Fatalf("ListUnreportedByGuideID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	wantOrder := []string{"first", "second", "third"}
	for i, q := range got {
		if q.Text != wantOrder[i] {
			t.Fatalf("position %d: got %q, want %q", i, q.Text, wantOrder[i])
		}
	}
}
