// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally turns stored ballots into per-category leaderboards.
package tally

import (
	"sort"

	"github.com/danielhkuo/medal-awards/models"
)

// DefaultTop is how many entries the admin leaderboard shows per category
const DefaultTop = 10

// Tally scores every candidate in every category. Entries with equal scores
// keep roster order, so the result does not depend on the order of records.
func Tally(records []models.BallotRecord, categories []models.AwardCategory, candidates []models.Candidate) map[models.CategoryID][]models.ScoreEntry {
	result := make(map[models.CategoryID][]models.ScoreEntry, len(categories))
	index := make(map[models.CategoryID]map[string]int, len(categories))

	for _, cat := range categories {
		entries := make([]models.ScoreEntry, len(candidates))
		byID := make(map[string]int, len(candidates))
		for i, c := range candidates {
			entries[i] = models.ScoreEntry{CandidateID: c.ID, Name: c.Name}
			byID[c.ID] = i
		}
		result[cat.ID] = entries
		index[cat.ID] = byID
	}

	for _, rec := range records {
		for catID, slots := range rec.Votes {
			entries, ok := result[catID]
			if !ok {
				continue
			}
			for _, medal := range models.Medals {
				id := slots.Get(medal)
				if id == "" {
					continue
				}
				i, ok := index[catID][id]
				if !ok {
					continue
				}
				award(&entries[i], medal)
			}
		}
	}

	for _, entries := range result {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
		assignRanks(entries)
	}

	return result
}

func award(e *models.ScoreEntry, medal models.Medal) {
	e.Score += medal.Points()
	switch medal {
	case models.Gold:
		e.GoldCount++
	case models.Silver:
		e.SilverCount++
	case models.Bronze:
		e.BronzeCount++
	}
}

// assignRanks uses competition ranking: 1, 1, 3
func assignRanks(entries []models.ScoreEntry) {
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// Top returns at most n leading entries. n <= 0 returns all of them.
func Top(entries []models.ScoreEntry, n int) []models.ScoreEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// Summary counts ballots against the codes entitled to vote
type Summary struct {
	BallotCount   int
	EligibleCount int
}

// Summarize only counts ballots whose code is still on the allow-list, each
// code once
func Summarize(records []models.BallotRecord, codes []string) Summary {
	eligible := make(map[string]bool, len(codes))
	for _, c := range codes {
		eligible[c] = true
	}

	cast := 0
	for _, r := range records {
		if eligible[r.Code] {
			cast++
			eligible[r.Code] = false
		}
	}
	return Summary{BallotCount: cast, EligibleCount: len(codes)}
}
