package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

type clipRepository struct {
	db *sql.DB
}

func NewClipRepository(db *sql.DB) interfaces.ClipRepository {
	return &clipRepository{db: db}
}

const clipColumns = `
	id, campaign_id, creator_id, clip_url, submitted_at, status, feedback,
	media_id, view_count, caption, posted_at
`

func scanClip(row interface{ Scan(...any) error }, c *models.Clip) error {
	return row.Scan(
		&c.ID,
		&c.CampaignID,
		&c.CreatorID,
		&c.ClipURL,
		&c.SubmittedAt,
		&c.Status,
		&c.Feedback,
		&c.MediaID,
		&c.ViewCount,
		&c.Caption,
		&c.PostedAt,
	)
}

func (r *clipRepository) Create(ctx context.Context, clip *models.Clip) error {
	query := `
		INSERT INTO clips (
			id, campaign_id, creator_id, clip_url, submitted_at, status,
			feedback, media_id, view_count, caption, posted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		clip.ID,
		clip.CampaignID,
		clip.CreatorID,
		clip.ClipURL,
		clip.SubmittedAt,
		clip.Status,
		clip.Feedback,
		clip.MediaID,
		clip.ViewCount,
		clip.Caption,
		clip.PostedAt,
	)
	return err
}

func (r *clipRepository) GetByID(ctx context.Context, id string) (*models.Clip, error) {
	query := `SELECT ` + clipColumns + ` FROM clips WHERE id = $1`

	var clip models.Clip
	if err := scanClip(r.db.QueryRowContext(ctx, query, id), &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

func (r *clipRepository) CountActiveSubmissions(ctx context.Context, creatorID string, campaignID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM clips
		WHERE creator_id = $1
		  AND campaign_id = $2
		  AND status <> 'accepted'
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, creatorID, campaignID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *clipRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Clip, error) {
	query := `SELECT ` + clipColumns + ` FROM clips WHERE campaign_id = $1 ORDER BY submitted_at`
	return r.queryClips(ctx, query, campaignID)
}

func (r *clipRepository) ListByCreatorAndCampaign(ctx context.Context, creatorID string, campaignID string) ([]models.Clip, error) {
	query := `SELECT ` + clipColumns + ` FROM clips WHERE creator_id = $1 AND campaign_id = $2 ORDER BY submitted_at`
	return r.queryClips(ctx, query, creatorID, campaignID)
}

func (r *clipRepository) ListAcceptedWithMediaID(ctx context.Context) ([]models.Clip, error) {
	query := `SELECT ` + clipColumns + ` FROM clips WHERE status = 'accepted' AND media_id IS NOT NULL ORDER BY submitted_at`
	return r.queryClips(ctx, query)
}

func (r *clipRepository) queryClips(ctx context.Context, query string, args ...any) ([]models.Clip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []models.Clip
	for rows.Next() {
		var clip models.Clip
		if err := scanClip(rows, &clip); err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// ListAcceptedWithCreator returns a campaign's accepted clips with the
// creator's username attached, ordered by submission time. The ranking
// service relies on this order being stable.
func (r *clipRepository) ListAcceptedWithCreator(ctx context.Context, campaignID string) ([]models.RankedClip, error) {
	query := `
		SELECT c.id, c.campaign_id, c.creator_id, c.clip_url, c.submitted_at,
			c.status, c.feedback, c.media_id, c.view_count, c.caption,
			c.posted_at, COALESCE(cr.username, 'Unknown Creator')
		FROM clips c
		LEFT JOIN creators cr ON cr.id = c.creator_id
		WHERE c.campaign_id = $1
		  AND c.status = 'accepted'
		ORDER BY c.submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []models.RankedClip
	for rows.Next() {
		var clip models.RankedClip
		err := rows.Scan(
			&clip.ID,
			&clip.CampaignID,
			&clip.CreatorID,
			&clip.ClipURL,
			&clip.SubmittedAt,
			&clip.Status,
			&clip.Feedback,
			&clip.MediaID,
			&clip.ViewCount,
			&clip.Caption,
			&clip.PostedAt,
			&clip.CreatorName,
		)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

func (r *clipRepository) ListCampaignIDsByCreator(ctx context.Context, creatorID string) ([]string, error) {
	query := `SELECT DISTINCT campaign_id FROM clips WHERE creator_id = $1`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *clipRepository) GetAcceptedForCreator(ctx context.Context, id string, creatorID string) (*models.Clip, error) {
	query := `SELECT ` + clipColumns + ` FROM clips WHERE id = $1 AND creator_id = $2 AND status = 'accepted'`

	var clip models.Clip
	if err := scanClip(r.db.QueryRowContext(ctx, query, id, creatorID), &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// Accept promotes a pending clip. The status guard makes the transition a
// single atomic statement; view fields stay NULL until the first sync.
func (r *clipRepository) Accept(ctx context.Context, id string) error {
	query := `
		UPDATE clips
		SET status = 'accepted', feedback = NULL
		WHERE id = $1 AND status = 'pending'
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *clipRepository) Reject(ctx context.Context, id string, feedback *string) error {
	query := `
		UPDATE clips
		SET status = 'rejected', feedback = $2
		WHERE id = $1 AND status = 'pending'
	`

	res, err := r.db.ExecContext(ctx, query, id, feedback)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *clipRepository) Delete(ctx context.Context, id string) (*models.Clip, error) {
	return r.deleteWhere(ctx, `DELETE FROM clips WHERE id = $1 RETURNING `+clipColumns, id)
}

func (r *clipRepository) DeleteForCreator(ctx context.Context, id string, creatorID string) (*models.Clip, error) {
	return r.deleteWhere(ctx, `DELETE FROM clips WHERE id = $1 AND creator_id = $2 RETURNING `+clipColumns, id, creatorID)
}

// deleteWhere removes a clip and compensates the campaign total in one
// transaction. An absent clip is a success with a nil result: deletion is
// idempotent by contract.
func (r *clipRepository) deleteWhere(ctx context.Context, query string, args ...any) (*models.Clip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var clip models.Clip
	if err := scanClip(tx.QueryRowContext(ctx, query, args...), &clip); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if clip.Status == models.ClipStatusAccepted {
		var views int64
		if clip.ViewCount != nil {
			views = *clip.ViewCount
		}
		_, err := tx.ExecContext(
			ctx,
			`UPDATE campaigns SET total_view_count = GREATEST(0, total_view_count - $1) WHERE id = $2`,
			views,
			clip.CampaignID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to adjust campaign total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &clip, nil
}

// RecordViews stores a view-count observation on an accepted clip and shifts
// the campaign total by the delta against the previous count.
func (r *clipRepository) RecordViews(ctx context.Context, id string, update models.ClipViewUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var campaignID string
	var previous *int64
	err = tx.QueryRowContext(
		ctx,
		`SELECT campaign_id, view_count FROM clips WHERE id = $1 AND status = 'accepted'`,
		id,
	).Scan(&campaignID, &previous)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE clips
		SET view_count = $2,
			caption = COALESCE($3, caption),
			media_id = COALESCE($4, media_id),
			posted_at = COALESCE($5, posted_at)
		WHERE id = $1`,
		id,
		update.ViewCount,
		update.Caption,
		update.MediaID,
		update.PostedAt,
	)
	if err != nil {
		return err
	}

	var delta int64 = update.ViewCount
	if previous != nil {
		delta -= *previous
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE campaigns SET total_view_count = GREATEST(0, total_view_count + $1) WHERE id = $2`,
		delta,
		campaignID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
