// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// Local content score weights.
const (
	weightSameType    = 2
	weightCloseYear   = 1
	weightSharedGenre = 2
	weightSharedTag   = 1

	closeYearWindow = 5
)

// ContentScore rates how close candidate is to seed:
//
//	2*[same type] + 1*[|year diff| <= 5] + 2*shared genres + 1*shared tags
//
// Genre and tag names compare case-insensitively. Unknown years never match.
func ContentScore(seed, candidate *models.ContentItem) int {
	score := 0
	if seed.Type != "" && seed.Type == candidate.Type {
		score += weightSameType
	}
	if sy, ok := seed.YearInt(); ok {
		if cy, ok := candidate.YearInt(); ok && abs(sy-cy) <= closeYearWindow {
			score += weightCloseYear
		}
	}
	score += weightSharedGenre * shared(seed.Genres, candidate.Genres)
	score += weightSharedTag * shared(seed.Tags, candidate.Tags)
	return score
}

func shared(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = struct{}{}
	}
	n := 0
	for _, v := range b {
		k := strings.ToLower(v)
		if _, ok := set[k]; ok {
			n++
			delete(set, k)
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rankByContentScore returns candidates ordered by ContentScore descending,
// ties in input order.
func rankByContentScore(seed *models.ContentItem, candidates []*models.ContentItem) []*models.ContentItem {
	scores := make(map[*models.ContentItem]int, len(candidates))
	for _, c := range candidates {
		scores[c] = ContentScore(seed, c)
	}
	out := append([]*models.ContentItem(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i]] > scores[out[j]]
	})
	return out
}

// rankByLocalPopularity orders candidates by view count descending, then
// year descending (unknown years last), ties in input order.
func rankByLocalPopularity(candidates []*models.ContentItem) []*models.ContentItem {
	out := append([]*models.ContentItem(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		ay, aok := a.YearInt()
		by, bok := b.YearInt()
		if aok != bok {
			return aok
		}
		return ay > by
	})
	return out
}
