package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
)

func TestUpdateFieldsEnforcesBrandOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewCampaignRepository(db)

	budget := 500.0
	mock.ExpectExec("UPDATE campaigns").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateFields(context.Background(), "camp1", "other-brand", interfaces.CampaignPatch{Budget: &budget})
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows for foreign campaign, got %v", err)
	}
}

func TestDeactivateExpiredReportsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewCampaignRepository(db)

	mock.ExpectExec("UPDATE campaigns").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeactivateExpired(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deactivated, got %d", n)
	}
}

func TestReconcileTotalsRewritesDriftedCampaigns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewCampaignRepository(db)

	mock.ExpectExec(`SUM\(cl.view_count\) FILTER`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.ReconcileTotals(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 reconciled, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListActiveOnlyAddsFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewCampaignRepository(db)

	mock.ExpectQuery("is_active = TRUE").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "brand_id", "name", "platform", "budget", "cpv", "hashtag", "audio",
			"deadline", "category", "requirements", "view_threshold", "asset_link",
			"is_active", "total_view_count", "created_at",
		}).AddRow("camp1", "brand1", "Launch", "instagram", 1000.0, 0.05, "#launch", "trending",
			time.Now().UTC(), "tech", nil, int64(0), nil, true, int64(0), time.Now().UTC()))

	campaigns, err := repo.List(context.Background(), interfaces.CampaignFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != "camp1" {
		t.Fatalf("unexpected campaigns: %+v", campaigns)
	}
}
