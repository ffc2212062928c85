package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/types"
)

func TestReportWeekUniqueness(t *testing.T) {
	gdb, log := newTestDB(t)
	reportRepo := NewReportRepo(gdb, log)
	elderRepo := NewElderRepo(gdb, log)
	ctx := context.Background()

	elders, err := elderRepo.Create(ctx, nil, []*types.Elder{{Name: "Kim"}})
	if err != nil {
		t.Fatalf("create elder: %v", err)
	}
	elder := elders[0]

	if _, err := reportRepo.Create(ctx, nil, &types.Report{ElderID: elder.ID, Year: 2024, WeekNumber: 10}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = reportRepo.Create(ctx, nil, &types.Report{ElderID: elder.ID, Year: 2024, WeekNumber: 10})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	// A different week for the same elder is fine.
	if _, err := reportRepo.Create(ctx, nil, &types.Report{ElderID: elder.ID, Year: 2024, WeekNumber: 11}); err != nil {
		t.Fatalf("different week: %v", err)
	}
}

func TestListByElderIDNewestFirst(t *testing.T) {
	gdb, log := newTestDB(t)
	reportRepo := NewReportRepo(gdb, log)
	elderRepo := NewElderRepo(gdb, log)
	ctx := context.Background()

	elders, err := elderRepo.Create(ctx, nil, []*types.Elder{{Name: "Kim"}, {Name: "Lee"}})
	if err != nil {
		t.Fatalf("create elders: %v", err)
	}
	kim, lee := elders[0], elders[1]

	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	for i, week := range []int{10, 11, 12} {
		if _, err := reportRepo.Create(ctx, nil, &types.Report{
			ElderID:    kim.ID,
			Year:       2024,
			WeekNumber: week,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("create report week %d: %v", week, err)
		}
	}
	if _, err := reportRepo.Create(ctx, nil, &types.Report{ElderID: lee.ID, Year: 2024, WeekNumber: 10}); err != nil {
		t.Fatalf("create other elder report: %v", err)
	}

	got, err := reportRepo.ListByElderID(ctx, nil, kim.ID)
	if err != nil {
		t.Fatalf("ListByElderID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got))
	}
	wantWeeks := []int{12, 11, 10}
	for i, r := range got {
		if r.WeekNumber != wantWeeks[i] {
			t.Fatalf("position %d: week %d, want %d", i, r.WeekNumber, wantWeeks[i])
		}
	}
}
