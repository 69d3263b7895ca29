package postgres

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestActivityRecordAndList(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	entries := []repositories.Activity{
		{UserID: "1", Resource: "stagiaires", Action: "create", Success: true, CreatedAt: base},
		{UserID: "1", Resource: "remarks", Action: "delete", Success: false, Message: "status 200", CreatedAt: base.Add(time.Minute)},
		{UserID: "2", Resource: "stagiaires", Action: "update", Success: true, Payload: []byte(`{"mle":"M1"}`), CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range entries {
		if err := repo.Record(ctx, &entries[i]); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if entries[i].ID == "" {
			t.Error("Record() should assign an id")
		}
	}

	tests := []struct {
		name       string
		filters    repositories.ActivityFilters
		wantTotal  int64
		wantFirst  string
		wantLength int
	}{
		{name: "all newest first", wantTotal: 3, wantFirst: "update", wantLength: 3},
		{name: "by resource", filters: repositories.ActivityFilters{Resource: "stagiaires"}, wantTotal: 2, wantFirst: "update", wantLength: 2},
		{name: "by user", filters: repositories.ActivityFilters{UserID: "1"}, wantTotal: 2, wantFirst: "delete", wantLength: 2},
		{name: "limit keeps total", filters: repositories.ActivityFilters{Limit: 1}, wantTotal: 3, wantFirst: "update", wantLength: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if total != tt.wantTotal || len(got) != tt.wantLength {
				t.Fatalf("List() = %d rows, total %d", len(got), total)
			}
			if got[0].Action != tt.wantFirst {
				t.Errorf("first action = %q, want %q", got[0].Action, tt.wantFirst)
			}
		})
	}

	since := base.Add(90 * time.Second)
	got, _, err := repo.List(ctx, repositories.ActivityFilters{Since: &since})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || string(got[0].Payload) != `{"mle":"M1"}` {
		t.Errorf("List(since) = %+v", got)
	}
}

func TestNopActivity(t *testing.T) {
	repo := NewActivityRepository(nil)
	if err := repo.Record(context.Background(), &repositories.Activity{}); err != nil {
		t.Fatal(err)
	}
	got, total, err := repo.List(context.Background(), repositories.ActivityFilters{})
	if err != nil || total != 0 || got == nil {
		t.Errorf("List() = %v, %d, %v", got, total, err)
	}
}
