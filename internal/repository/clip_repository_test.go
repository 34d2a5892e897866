package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

func clipColumnsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "campaign_id", "creator_id", "clip_url", "submitted_at", "status",
		"feedback", "media_id", "view_count", "caption", "posted_at",
	})
}

func TestDeleteAcceptedClipDecrementsCampaignTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM clips WHERE id").WithArgs("clip1").
		WillReturnRows(clipColumnsRows().
			AddRow("clip1", "camp1", "creator1", "https://x/v.mp4", time.Now().UTC(), "accepted",
				nil, "media1", int64(120), nil, nil))
	mock.ExpectExec("UPDATE campaigns SET total_view_count = GREATEST").
		WithArgs(int64(120), "camp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	clip, err := repo.Delete(context.Background(), "clip1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if clip == nil || clip.ID != "clip1" {
		t.Fatalf("expected removed clip back, got %+v", clip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteAcceptedClipWithNullViewsAdjustsByZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM clips WHERE id").WithArgs("clip1").
		WillReturnRows(clipColumnsRows().
			AddRow("clip1", "camp1", "creator1", "https://x/v.mp4", time.Now().UTC(), "accepted",
				nil, nil, nil, nil, nil))
	mock.ExpectExec("UPDATE campaigns SET total_view_count = GREATEST").
		WithArgs(int64(0), "camp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.Delete(context.Background(), "clip1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeletePendingClipSkipsCampaignUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM clips WHERE id").WithArgs("clip1").
		WillReturnRows(clipColumnsRows().
			AddRow("clip1", "camp1", "creator1", "https://x/v.mp4", time.Now().UTC(), "pending",
				nil, nil, nil, nil, nil))
	mock.ExpectCommit()

	clip, err := repo.Delete(context.Background(), "clip1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if clip.Status != models.ClipStatusPending {
		t.Fatalf("unexpected clip: %+v", clip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteMissingClipIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM clips WHERE id").WithArgs("ghost").WillReturnRows(clipColumnsRows())
	mock.ExpectRollback()

	clip, err := repo.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected idempotent success, got %v", err)
	}
	if clip != nil {
		t.Fatalf("expected nil clip for absent id, got %+v", clip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordViewsShiftsCampaignTotalByDelta(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT campaign_id, view_count FROM clips").WithArgs("clip1").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "view_count"}).AddRow("camp1", int64(50)))
	mock.ExpectExec("UPDATE clips").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE campaigns SET total_view_count = GREATEST").
		WithArgs(int64(70), "camp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.RecordViews(context.Background(), "clip1", models.ClipViewUpdate{ViewCount: 120})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordViewsFirstObservationUsesFullCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT campaign_id, view_count FROM clips").WithArgs("clip1").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "view_count"}).AddRow("camp1", nil))
	mock.ExpectExec("UPDATE clips").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE campaigns SET total_view_count = GREATEST").
		WithArgs(int64(200), "camp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.RecordViews(context.Background(), "clip1", models.ClipViewUpdate{ViewCount: 200}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordViewsOnNonAcceptedClip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT campaign_id, view_count FROM clips").WithArgs("clip1").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "view_count"}))
	mock.ExpectRollback()

	err = repo.RecordViews(context.Background(), "clip1", models.ClipViewUpdate{ViewCount: 10})
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestAcceptGuardedByPendingStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectExec("UPDATE clips").WithArgs("clip1").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Accept(context.Background(), "clip1"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows for decided clip, got %v", err)
	}
}

func TestCountActiveSubmissionsExcludesAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewClipRepository(db)

	mock.ExpectQuery(`status <> 'accepted'`).WithArgs("creator1", "camp1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveSubmissions(context.Background(), "creator1", "camp1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}
