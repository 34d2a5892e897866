package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/repository"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

type fakeStatsClient struct {
	stats map[string]*services.MediaStats
}

func (f *fakeStatsClient) GetMediaStats(ctx context.Context, mediaID string) (*services.MediaStats, error) {
	if s, ok := f.stats[mediaID]; ok {
		return s, nil
	}
	return nil, context.Canceled
}

func newSyncTestRig(t *testing.T, stats services.MediaStatsClient) (*SyncHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	clipRepo := repository.NewClipRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	svc := services.NewClipService(clipRepo, campaignRepo)
	h := NewSyncHandler(svc, clipRepo, campaignRepo, stats)

	return h, mock, func() { db.Close() }
}

func TestSyncViewsIngestsPlatformCounts(t *testing.T) {
	stats := &fakeStatsClient{stats: map[string]*services.MediaStats{
		"media1": {MediaID: "media1", ViewCount: 120},
	}}
	h, mock, done := newSyncTestRig(t, stats)
	defer done()

	mock.ExpectQuery("FROM clips WHERE status = 'accepted' AND media_id IS NOT NULL").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "campaign_id", "creator_id", "clip_url", "submitted_at", "status",
			"feedback", "media_id", "view_count", "caption", "posted_at",
		}).AddRow("clip1", "camp1", "creator1", "https://x/v.mp4", time.Now().UTC(), "accepted",
			nil, "media1", int64(50), nil, nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT campaign_id, view_count FROM clips").WithArgs("clip1").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "view_count"}).AddRow("camp1", int64(50)))
	mock.ExpectExec("UPDATE clips").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE campaigns SET total_view_count = GREATEST").
		WithArgs(int64(70), "camp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/views", nil)
	w := httptest.NewRecorder()
	h.SyncViews(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["synced"] != float64(1) || resp["failed"] != float64(0) {
		t.Fatalf("unexpected sync summary: %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSyncViewsCountsPerClipFailures(t *testing.T) {
	h, mock, done := newSyncTestRig(t, &fakeStatsClient{})
	defer done()

	mock.ExpectQuery("FROM clips WHERE status = 'accepted' AND media_id IS NOT NULL").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "campaign_id", "creator_id", "clip_url", "submitted_at", "status",
			"feedback", "media_id", "view_count", "caption", "posted_at",
		}).AddRow("clip1", "camp1", "creator1", "https://x/v.mp4", time.Now().UTC(), "accepted",
			nil, "dead-media", nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/views", nil)
	w := httptest.NewRecorder()
	h.SyncViews(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["failed"] != float64(1) {
		t.Fatalf("expected one failure, got %v", resp)
	}
}

func TestMaintenanceExpiresAndReconciles(t *testing.T) {
	h, mock, done := newSyncTestRig(t, &fakeStatsClient{})
	defer done()

	mock.ExpectExec("UPDATE campaigns").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`SUM\(cl.view_count\) FILTER`).WillReturnResult(sqlmock.NewResult(0, 2))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/maintenance", nil)
	w := httptest.NewRecorder()
	h.Maintenance(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["expired_campaigns"] != float64(3) || resp["reconciled_campaigns"] != float64(2) {
		t.Fatalf("unexpected maintenance summary: %v", resp)
	}
}
