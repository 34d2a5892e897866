package services

import (
	"sort"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

// RankClips assigns leaderboard ranks to a campaign's accepted clips and
// returns them in display order.
//
// A clip is rankable only when its view count is present, positive, and held
// by no other clip in the set. Duplicate counts disqualify every holder: a
// shared number gives no way to order them fairly, so none of them get a rank.
// Ranked clips come first by view count descending. Then the duplicate groups,
// ascending by the shared value, each in submission order. Clips with no
// views (missing, zero or negative counts) close the list in submission order.
// Input is not mutated.
func RankClips(clips []models.RankedClip) []models.RankedClip {
	counts := make(map[int64]int)
	for _, clip := range clips {
		if clip.ViewCount != nil && *clip.ViewCount > 0 {
			counts[*clip.ViewCount]++
		}
	}

	var ranked, noViews []models.RankedClip
	duplicates := make(map[int64][]models.RankedClip)
	var duplicateValues []int64

	for _, clip := range clips {
		clip.Rank = nil
		switch {
		case clip.ViewCount == nil || *clip.ViewCount <= 0:
			noViews = append(noViews, clip)
		case counts[*clip.ViewCount] > 1:
			v := *clip.ViewCount
			if _, seen := duplicates[v]; !seen {
				duplicateValues = append(duplicateValues, v)
			}
			duplicates[v] = append(duplicates[v], clip)
		default:
			ranked = append(ranked, clip)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		return *ranked[i].ViewCount > *ranked[j].ViewCount
	})
	for i := range ranked {
		rank := i + 1
		ranked[i].Rank = &rank
	}

	sort.Slice(duplicateValues, func(i, j int) bool {
		return duplicateValues[i] < duplicateValues[j]
	})

	out := make([]models.RankedClip, 0, len(clips))
	out = append(out, ranked...)
	for _, v := range duplicateValues {
		out = append(out, duplicates[v]...)
	}
	return append(out, noViews...)
}

// Leaderboard aggregates ranked clips into per-creator totals, ordered by
// total views descending. Clips without a rank contribute nothing, so a
// creator whose every clip is unranked does not appear at all.
func Leaderboard(clips []models.RankedClip) []models.CreatorRanking {
	totals := make(map[string]*models.CreatorRanking)
	var order []string

	for _, clip := range clips {
		if clip.Rank == nil {
			continue
		}
		entry, ok := totals[clip.CreatorID]
		if !ok {
			entry = &models.CreatorRanking{
				CreatorID:   clip.CreatorID,
				CreatorName: clip.CreatorName,
			}
			totals[clip.CreatorID] = entry
			order = append(order, clip.CreatorID)
		}
		entry.TotalViews += *clip.ViewCount
		entry.ClipCount++
	}

	rankings := make([]models.CreatorRanking, 0, len(order))
	for _, id := range order {
		rankings = append(rankings, *totals[id])
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalViews > rankings[j].TotalViews
	})

	return rankings
}
