package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `
	id, brand_id, name, platform, budget, cpv, hashtag, audio, deadline,
	category, requirements, view_threshold, asset_link, is_active,
	total_view_count, created_at
`

func scanCampaign(row interface{ Scan(...any) error }, c *models.Campaign) error {
	return row.Scan(
		&c.ID,
		&c.BrandID,
		&c.Name,
		&c.Platform,
		&c.Budget,
		&c.CPV,
		&c.Hashtag,
		&c.Audio,
		&c.Deadline,
		&c.Category,
		&c.Requirements,
		&c.ViewThreshold,
		&c.AssetLink,
		&c.IsActive,
		&c.TotalViewCount,
		&c.CreatedAt,
	)
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (
			id, brand_id, name, platform, budget, cpv, hashtag, audio,
			deadline, category, requirements, view_threshold, asset_link,
			is_active, total_view_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		campaign.ID,
		campaign.BrandID,
		campaign.Name,
		campaign.Platform,
		campaign.Budget,
		campaign.CPV,
		campaign.Hashtag,
		campaign.Audio,
		campaign.Deadline,
		campaign.Category,
		campaign.Requirements,
		campaign.ViewThreshold,
		campaign.AssetLink,
		campaign.IsActive,
		campaign.TotalViewCount,
	).Scan(&campaign.CreatedAt)
	return err
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var campaign models.Campaign
	err := scanCampaign(r.db.QueryRowContext(ctx, query, id), &campaign)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Println("Error fetching campaign with ID:", id, "Error:", err)
		return nil, err
	}

	return &campaign, nil
}

// List retrieves campaigns matching the provided filter
func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`

	var args []any
	var whereClauses []string
	argPos := 1

	if filter.BrandID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("brand_id = $%d", argPos))
		args = append(args, filter.BrandID)
		argPos++
	}

	if filter.ActiveOnly {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}

	if len(filter.IDs) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("id = ANY($%d)", argPos))
		args = append(args, pq.Array(filter.IDs))
		argPos++
	}

	if len(whereClauses) > 0 {
		query += " AND " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		var campaign models.Campaign
		if err := scanCampaign(rows, &campaign); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &campaign)
	}

	return campaigns, rows.Err()
}

// UpdateFields applies a field-scoped patch, enforcing brand ownership in the
// WHERE clause so a brand can never edit another brand's campaign.
func (r *campaignRepository) UpdateFields(ctx context.Context, id string, brandID string, patch interfaces.CampaignPatch) error {
	query := `
		UPDATE campaigns
		SET budget = COALESCE($1, budget),
			requirements = COALESCE($2, requirements),
			is_active = COALESCE($3, is_active),
			view_threshold = COALESCE($4, view_threshold),
			deadline = COALESCE($5, deadline),
			asset_link = COALESCE($6, asset_link)
		WHERE id = $7 AND brand_id = $8
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		patch.Budget,
		patch.Requirements,
		patch.IsActive,
		patch.ViewThreshold,
		patch.Deadline,
		patch.AssetLink,
		id,
		brandID,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
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

// Delete removes a brand's campaign; clips go with it via the FK cascade.
func (r *campaignRepository) Delete(ctx context.Context, id string, brandID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1 AND brand_id = $2", id, brandID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *campaignRepository) DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE campaigns
		SET is_active = FALSE
		WHERE is_active = TRUE
		  AND deadline < $1::date
	`

	res, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// ReconcileTotals repairs drift between the incrementally-maintained
// total_view_count and the accepted clips actually present.
func (r *campaignRepository) ReconcileTotals(ctx context.Context) (int64, error) {
	query := `
		UPDATE campaigns c
		SET total_view_count = sub.total
		FROM (
			SELECT camp.id,
				COALESCE(SUM(cl.view_count) FILTER (WHERE cl.status = 'accepted'), 0) AS total
			FROM campaigns camp
			LEFT JOIN clips cl ON cl.campaign_id = camp.id
			GROUP BY camp.id
		) sub
		WHERE c.id = sub.id
		  AND c.total_view_count <> sub.total
	`

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
