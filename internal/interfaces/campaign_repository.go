// internal/interfaces/campaign_repository.go
package interfaces

import (
	"context"
	"time"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

// CampaignFilter defines the filter criteria for listing campaigns
type CampaignFilter struct {
	BrandID    string
	ActiveOnly bool
	IDs        []string
	Limit      int
	Offset     int
}

// CampaignPatch carries field-scoped campaign updates. Nil fields are left
// untouched. total_view_count is deliberately absent: it is owned by the
// clip lifecycle and the view sync, never by a brand edit.
type CampaignPatch struct {
	Budget        *float64
	Requirements  *string
	IsActive      *bool
	ViewThreshold *int64
	Deadline      *time.Time
	AssetLink     *string
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]*models.Campaign, error)
	// UpdateFields applies patch to the campaign only when it belongs to
	// brandID; sql.ErrNoRows when it does not exist or is not owned.
	UpdateFields(ctx context.Context, id string, brandID string, patch CampaignPatch) error
	Delete(ctx context.Context, id string, brandID string) error
	// DeactivateExpired flips is_active off for campaigns whose deadline
	// has passed, returning the number affected.
	DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error)
	// ReconcileTotals rewrites every campaign's total_view_count from the
	// sum of its accepted clips' view counts, returning rows changed.
	ReconcileTotals(ctx context.Context) (int64, error)
}
