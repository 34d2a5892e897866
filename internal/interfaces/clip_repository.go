// internal/interfaces/clip_repository.go
package interfaces

import (
	"context"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

// ClipRepository defines the interface for clip data operations. Transitions
// that touch both a clip and its campaign's total_view_count are transactional
// inside the implementation.
type ClipRepository interface {
	Create(ctx context.Context, clip *models.Clip) error
	GetByID(ctx context.Context, id string) (*models.Clip, error)
	// CountActiveSubmissions counts the creator's non-accepted clips for a
	// campaign (pending and rejected both hold a submission slot).
	CountActiveSubmissions(ctx context.Context, creatorID string, campaignID string) (int, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]models.Clip, error)
	ListByCreatorAndCampaign(ctx context.Context, creatorID string, campaignID string) ([]models.Clip, error)
	// ListAcceptedWithCreator returns a campaign's accepted clips joined
	// with the creator's display name, in submission order.
	ListAcceptedWithCreator(ctx context.Context, campaignID string) ([]models.RankedClip, error)
	ListCampaignIDsByCreator(ctx context.Context, creatorID string) ([]string, error)
	ListAcceptedWithMediaID(ctx context.Context) ([]models.Clip, error)
	GetAcceptedForCreator(ctx context.Context, id string, creatorID string) (*models.Clip, error)

	// Accept and Reject apply only to pending clips; sql.ErrNoRows otherwise.
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, feedback *string) error

	// Delete removes a clip and, when it was accepted, decrements the owning
	// campaign's total_view_count by its view count (floored at zero) in the
	// same transaction. Returns the removed clip, or nil when nothing
	// existed — absence is not an error.
	Delete(ctx context.Context, id string) (*models.Clip, error)
	// DeleteForCreator is Delete scoped to clips owned by creatorID.
	DeleteForCreator(ctx context.Context, id string, creatorID string) (*models.Clip, error)

	// RecordViews stores a view-count observation on an accepted clip and
	// shifts the campaign total by the delta, transactionally.
	RecordViews(ctx context.Context, id string, update models.ClipViewUpdate) error
}
