package services

import (
	"testing"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

func rankedClip(id, creatorID, creatorName string, views *int64) models.RankedClip {
	return models.RankedClip{
		Clip: models.Clip{
			ID:         id,
			CampaignID: "camp1",
			CreatorID:  creatorID,
			Status:     models.ClipStatusAccepted,
			ViewCount:  views,
		},
		CreatorName: creatorName,
	}
}

func views(n int64) *int64 { return &n }

func TestRankClipsDuplicatesAndZeroesUnranked(t *testing.T) {
	clips := []models.RankedClip{
		rankedClip("c1", "u1", "alice", views(100)),
		rankedClip("c2", "u2", "bob", views(100)),
		rankedClip("c3", "u3", "carol", views(50)),
		rankedClip("c4", "u4", "dave", views(0)),
		rankedClip("c5", "u5", "erin", views(75)),
	}

	got := RankClips(clips)

	wantOrder := []string{"c5", "c3", "c1", "c2", "c4"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d clips, got %d", len(wantOrder), len(got))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	if got[0].Rank == nil || *got[0].Rank != 1 {
		t.Fatalf("expected c5 ranked 1, got %v", got[0].Rank)
	}
	if got[1].Rank == nil || *got[1].Rank != 2 {
		t.Fatalf("expected c3 ranked 2, got %v", got[1].Rank)
	}
	for _, clip := range got[2:] {
		if clip.Rank != nil {
			t.Fatalf("expected %s unranked, got rank %d", clip.ID, *clip.Rank)
		}
	}
}

func TestRankClipsNilViewCountsUnranked(t *testing.T) {
	clips := []models.RankedClip{
		rankedClip("c1", "u1", "alice", nil),
		rankedClip("c2", "u2", "bob", views(10)),
		rankedClip("c3", "u3", "carol", nil),
	}

	got := RankClips(clips)

	if got[0].ID != "c2" || got[0].Rank == nil || *got[0].Rank != 1 {
		t.Fatalf("expected c2 first with rank 1, got %+v", got[0])
	}
	if got[1].ID != "c1" || got[2].ID != "c3" {
		t.Fatalf("expected nil-view clips in submission order, got %s, %s", got[1].ID, got[2].ID)
	}
}

func TestRankClipsAllDuplicates(t *testing.T) {
	clips := []models.RankedClip{
		rankedClip("c1", "u1", "alice", views(40)),
		rankedClip("c2", "u2", "bob", views(40)),
		rankedClip("c3", "u3", "carol", views(20)),
		rankedClip("c4", "u4", "dave", views(20)),
	}

	got := RankClips(clips)

	// Duplicate groups come back ascending by the shared value.
	wantOrder := []string{"c3", "c4", "c1", "c2"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
		if got[i].Rank != nil {
			t.Fatalf("expected %s unranked, got rank %d", got[i].ID, *got[i].Rank)
		}
	}
}

func TestRankClipsEmptyInput(t *testing.T) {
	if got := RankClips(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %d clips", len(got))
	}
}

func TestLeaderboardExcludesUnrankedCreators(t *testing.T) {
	clips := RankClips([]models.RankedClip{
		rankedClip("c1", "u1", "alice", views(100)),
		rankedClip("c2", "u2", "bob", views(100)),
		rankedClip("c3", "u3", "carol", views(50)),
		rankedClip("c4", "u3", "carol", views(30)),
	})

	board := Leaderboard(clips)

	if len(board) != 1 {
		t.Fatalf("expected 1 leaderboard entry, got %d", len(board))
	}
	if board[0].CreatorID != "u3" || board[0].TotalViews != 80 || board[0].ClipCount != 2 {
		t.Fatalf("unexpected entry: %+v", board[0])
	}
}

func TestLeaderboardTieKeepsFirstEncounteredOrder(t *testing.T) {
	clips := RankClips([]models.RankedClip{
		rankedClip("c1", "u1", "alice", views(60)),
		rankedClip("c2", "u2", "bob", views(40)),
		rankedClip("c3", "u2", "bob", views(20)),
	})

	board := Leaderboard(clips)

	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	// Both total 60; alice holds the top ranked clip so she is encountered
	// first in the ranked order.
	if board[0].CreatorID != "u1" || board[1].CreatorID != "u2" {
		t.Fatalf("unexpected tie order: %s, %s", board[0].CreatorID, board[1].CreatorID)
	}
}
