package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

func TestComputeRemarkStats(t *testing.T) {
	pos := func() models.Remark { return models.Remark{Type: models.RemarkPositive} }
	neg := func() models.Remark { return models.Remark{Type: models.RemarkNegative} }

	tests := []struct {
		name    string
		remarks []models.Remark
		want    models.RemarkStats
	}{
		{name: "empty", want: models.RemarkStats{}},
		{
			name:    "three to two",
			remarks: []models.Remark{pos(), pos(), pos(), neg(), neg()},
			want:    models.RemarkStats{Positive: 3, Negative: 2, Total: 5, PositivePct: 60, NegativePct: 40},
		},
		{
			name:    "thirds sum to 100",
			remarks: []models.Remark{pos(), neg(), neg()},
			want:    models.RemarkStats{Positive: 1, Negative: 2, Total: 3, PositivePct: 33, NegativePct: 67},
		},
		{
			name:    "only negative",
			remarks: []models.Remark{neg()},
			want:    models.RemarkStats{Negative: 1, Total: 1, NegativePct: 100},
		},
		{
			name:    "unknown type ignored",
			remarks: []models.Remark{pos(), {Type: "Neutral"}},
			want:    models.RemarkStats{Positive: 1, Total: 1, PositivePct: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRemarkStats(tt.remarks); got != tt.want {
				t.Errorf("ComputeRemarkStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatsServiceTraineeRemarks(t *testing.T) {
	repo := newFakeRepository()
	a := stagiaire("a", "M1", "Ali", "Ben")
	b := stagiaire("b", "M2", "Sami", "T")
	repo.remarks.items = []models.Remark{
		remark("r1", models.RemarkPositive, &a),
		remark("r2", models.RemarkPositive, &a),
		remark("r3", models.RemarkPositive, &a),
		remark("r4", models.RemarkNegative, &a),
		remark("r5", models.RemarkNegative, &a),
		remark("r6", models.RemarkNegative, &b),
		remark("r7", models.RemarkPositive, nil),
	}
	svc := NewStatsService(repo, quietLogger)
	ctx := context.Background()

	got, err := svc.TraineeRemarks(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.PositivePct != 60 || got.NegativePct != 40 || got.Total != 5 {
		t.Errorf("TraineeRemarks(a) = %+v", got)
	}

	all, err := svc.Remarks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all.Total != 7 || all.Positive != 4 {
		t.Errorf("Remarks() = %+v", all)
	}

	repo.remarks.listErr = errors.New("down")
	if _, err := svc.Remarks(ctx); err == nil {
		t.Error("Remarks() should report a fetch failure")
	}
}
