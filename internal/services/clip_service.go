package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/interfaces"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

// maxSubmissionsPerCampaign caps a creator's open (non-accepted) submissions
// per campaign. Accepted clips free their slot.
const maxSubmissionsPerCampaign = 5

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignInactive = errors.New("campaign is not active")
	ErrSubmissionQuota  = errors.New("submission limit reached for this campaign")
	ErrClipNotFound     = errors.New("clip not found")
	ErrInvalidDecision  = errors.New("invalid clip decision")
)

// ClipService owns the clip lifecycle: submission, moderation decisions,
// deletion and view-count ingestion. Every transition that touches a
// campaign's total goes through the repository transactionally.
type ClipService struct {
	clips     interfaces.ClipRepository
	campaigns interfaces.CampaignRepository
}

func NewClipService(clips interfaces.ClipRepository, campaigns interfaces.CampaignRepository) *ClipService {
	return &ClipService{clips: clips, campaigns: campaigns}
}

// Submit creates a pending clip for the creator against an active campaign.
func (s *ClipService) Submit(ctx context.Context, creatorID string, req *models.SubmitClipRequest) (*models.Clip, error) {
	campaign, err := s.campaigns.GetByID(ctx, req.CampaignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if !campaign.IsActive {
		return nil, ErrCampaignInactive
	}

	count, err := s.clips.CountActiveSubmissions(ctx, creatorID, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if count >= maxSubmissionsPerCampaign {
		return nil, ErrSubmissionQuota
	}

	clip := &models.Clip{
		ID:          uuid.NewString(),
		CampaignID:  req.CampaignID,
		CreatorID:   creatorID,
		ClipURL:     req.ClipURL,
		SubmittedAt: time.Now().UTC(),
		Status:      models.ClipStatusPending,
	}
	if err := s.clips.Create(ctx, clip); err != nil {
		return nil, err
	}
	return clip, nil
}

// Decide applies an accept or reject decision to a pending clip. Clips in any
// other state are reported as not found: a decided clip has left the queue.
func (s *ClipService) Decide(ctx context.Context, id string, req *models.ClipDecisionRequest) error {
	var err error
	switch models.ClipStatus(req.Status) {
	case models.ClipStatusAccepted:
		err = s.clips.Accept(ctx, id)
	case models.ClipStatusRejected:
		err = s.clips.Reject(ctx, id, req.Feedback)
	default:
		return ErrInvalidDecision
	}

	if err == sql.ErrNoRows {
		return ErrClipNotFound
	}
	return err
}

// Delete removes any clip by id. A missing clip is a no-op success; the
// returned clip is nil in that case.
func (s *ClipService) Delete(ctx context.Context, id string) (*models.Clip, error) {
	return s.clips.Delete(ctx, id)
}

// DeleteForCreator removes a creator's own clip with the same idempotent
// contract as Delete.
func (s *ClipService) DeleteForCreator(ctx context.Context, id string, creatorID string) (*models.Clip, error) {
	return s.clips.DeleteForCreator(ctx, id, creatorID)
}

// RecordViews ingests one view-count observation for an accepted clip.
func (s *ClipService) RecordViews(ctx context.Context, id string, update models.ClipViewUpdate) error {
	err := s.clips.RecordViews(ctx, id, update)
	if err == sql.ErrNoRows {
		return ErrClipNotFound
	}
	return err
}
