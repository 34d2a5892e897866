package models

import "time"

type Campaign struct {
	ID             string    `json:"id"`
	BrandID        string    `json:"brand_id"`
	Name           string    `json:"name" validate:"required"`
	Platform       string    `json:"platform"`
	Budget         float64   `json:"budget"`
	CPV            float64   `json:"cpv"`
	Hashtag        string    `json:"hashtag"`
	Audio          string    `json:"audio"`
	Deadline       time.Time `json:"deadline"`
	Category       string    `json:"category"`
	Requirements   *string   `json:"requirements"`
	ViewThreshold  int64     `json:"view_threshold"`
	AssetLink      *string   `json:"asset_link"`
	IsActive       bool      `json:"is_active"`
	TotalViewCount int64     `json:"total_view_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateCampaignRequest struct {
	Name          string  `json:"name" validate:"required"`
	Platform      string  `json:"platform" validate:"required"`
	Budget        float64 `json:"budget" validate:"required,gt=0"`
	CPV           float64 `json:"cpv" validate:"required,gt=0"`
	Hashtag       string  `json:"hashtag" validate:"required"`
	Audio         string  `json:"audio" validate:"required"`
	Deadline      string  `json:"deadline" validate:"required,datetime=2006-01-02"`
	Category      string  `json:"category" validate:"required"`
	Requirements  *string `json:"requirements,omitempty"`
	ViewThreshold int64   `json:"view_threshold" validate:"gte=0"`
	AssetLink     *string `json:"asset_link,omitempty"`
}

type UpdateBudgetRequest struct {
	Budget *float64 `json:"budget" validate:"required,gt=0"`
}

type UpdateRequirementsRequest struct {
	Requirements *string `json:"requirements"`
}

type UpdateCampaignStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UpdateViewThresholdRequest struct {
	ViewThreshold *int64 `json:"view_threshold" validate:"required,gte=0"`
}

type UpdateDeadlineRequest struct {
	Deadline string `json:"deadline" validate:"required,datetime=2006-01-02"`
}

// CampaignDetail is the public campaign view: clips in display order
// (ranked first, unranked after) plus the per-creator leaderboard.
type CampaignDetail struct {
	Campaign
	AcceptedClips   []RankedClip     `json:"accepted_clips"`
	CreatorRankings []CreatorRanking `json:"creator_rankings"`
}

// AdminCampaign is the moderation view: every campaign with its brand's
// username and both pending and accepted clips attached.
type AdminCampaign struct {
	Campaign
	BrandUsername  string `json:"brand_username"`
	SubmittedClips []Clip `json:"submitted_clips"`
	AcceptedClips  []Clip `json:"accepted_clips"`
}

// CreatorCampaign is a campaign the creator participates in, with only that
// creator's clips attached.
type CreatorCampaign struct {
	Campaign
	SubmittedClips []Clip `json:"submitted_clips"`
	AcceptedClips  []Clip `json:"accepted_clips"`
}
