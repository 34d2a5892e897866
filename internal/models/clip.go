package models

import "time"

type ClipStatus string

const (
	ClipStatusPending  ClipStatus = "pending"
	ClipStatusRejected ClipStatus = "rejected"
	ClipStatusAccepted ClipStatus = "accepted"
)

// Clip is a creator submission for a campaign. A clip keeps one identifier
// for its whole life; only the status moves it between the pending queue and
// the accepted set, so it can never exist as both at once.
type Clip struct {
	ID          string     `json:"id"`
	CampaignID  string     `json:"campaign_id"`
	CreatorID   string     `json:"creator_id"`
	ClipURL     string     `json:"clip_url"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Status      ClipStatus `json:"status"`
	Feedback    *string    `json:"feedback,omitempty"`
	MediaID     *string    `json:"media_id,omitempty"`
	ViewCount   *int64     `json:"view_count"`
	Caption     *string    `json:"caption,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
}

type SubmitClipRequest struct {
	CampaignID string `json:"campaign_id" validate:"required,uuid4"`
	ClipURL    string `json:"clip_url" validate:"required,url"`
}

type ClipDecisionRequest struct {
	Status   string  `json:"status" validate:"required,oneof=accepted rejected"`
	Feedback *string `json:"feedback,omitempty"`
}

// RankedClip is an accepted clip annotated with its creator's display name
// and, when it holds a unique positive view count, its leaderboard rank.
type RankedClip struct {
	Clip
	CreatorName string `json:"creator_name"`
	Rank        *int   `json:"rank"`
}

// CreatorRanking is one leaderboard row, derived per campaign and never
// persisted. Only uniquely-ranked clips contribute to it.
type CreatorRanking struct {
	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	TotalViews  int64  `json:"total_views"`
	ClipCount   int    `json:"clip_count"`
}

// ClipViewUpdate carries one view-count observation from the platform sync.
type ClipViewUpdate struct {
	MediaID   *string    `json:"media_id,omitempty"`
	ViewCount int64      `json:"view_count" validate:"gte=0"`
	Caption   *string    `json:"caption,omitempty"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
}
