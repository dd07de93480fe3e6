// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/medal-awards/models"
)

var (
	categories = []models.AwardCategory{{ID: "x"}, {ID: "y"}}
	candidates = []models.Candidate{
		{ID: "A", Name: "Anna"},
		{ID: "B", Name: "Bruno"},
		{ID: "C", Name: "Carla"},
	}
)

func scores(entries []models.ScoreEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.CandidateID] = e.Score
	}
	return out
}

func assertSorted(t *testing.T, entries []models.ScoreEntry) {
	t.Helper()
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score, "entries not sorted at %d", i)
	}
}

func TestTally_Example(t *testing.T) {
	records := []models.BallotRecord{
		{Code: "1", Votes: models.Draft{"x": {Gold: "A", Silver: "B", Bronze: "C"}}},
		{Code: "2", Votes: models.Draft{"x": {Gold: "B", Silver: "A", Bronze: "C"}}},
	}

	result := Tally(records, categories, candidates)
	x := result["x"]
	require.Len(t, x, 3)

	assert.Equal(t, map[string]int{"A": 5, "B": 5, "C": 2}, scores(x))
	assertSorted(t, x)

	// the tied pair leads, C last
	assert.ElementsMatch(t, []string{"A", "B"}, []string{x[0].CandidateID, x[1].CandidateID})
	assert.Equal(t, "C", x[2].CandidateID)

	assert.Equal(t, 1, x[0].Rank)
	assert.Equal(t, 1, x[1].Rank)
	assert.Equal(t, 3, x[2].Rank)

	for _, e := range x {
		switch e.CandidateID {
		case "A", "B":
			assert.Equal(t, 1, e.GoldCount)
			assert.Equal(t, 1, e.SilverCount)
			assert.Equal(t, 0, e.BronzeCount)
		case "C":
			assert.Equal(t, 2, e.BronzeCount)
		}
	}
}

func TestTally_DeterministicAcrossRecordOrder(t *testing.T) {
	r1 := models.BallotRecord{Code: "1", Votes: models.Draft{"x": {Gold: "A", Silver: "B", Bronze: "C"}}}
	r2 := models.BallotRecord{Code: "2", Votes: models.Draft{"x": {Gold: "B", Silver: "A", Bronze: "C"}}}

	forward := Tally([]models.BallotRecord{r1, r2}, categories, candidates)
	backward := Tally([]models.BallotRecord{r2, r1}, categories, candidates)
	assert.Equal(t, forward, backward)

	// ties keep roster order
	assert.Equal(t, "A", forward["x"][0].CandidateID)
}

func TestTally_ZeroVotes(t *testing.T) {
	result := Tally(nil, categories, candidates)
	require.Len(t, result, len(categories))

	for _, cat := range categories {
		entries := result[cat.ID]
		require.Len(t, entries, len(candidates), cat.ID)
		for i, e := range entries {
			assert.Equal(t, 0, e.Score)
			assert.Equal(t, 1, e.Rank)
			assert.Equal(t, candidates[i].ID, e.CandidateID)
			assert.Equal(t, candidates[i].Name, e.Name)
		}
	}
}

func TestTally_CategoriesIndependent(t *testing.T) {
	records := []models.BallotRecord{
		{Code: "1", Votes: models.Draft{
			"x": {Gold: "A", Silver: "B", Bronze: "C"},
			"y": {Gold: "C", Silver: "B", Bronze: "A"},
		}},
	}

	result := Tally(records, categories, candidates)
	assert.Equal(t, map[string]int{"A": 3, "B": 2, "C": 1}, scores(result["x"]))
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, scores(result["y"]))
	assert.Equal(t, "C", result["y"][0].CandidateID)
}

func TestTally_Tolerant(t *testing.T) {
	records := []models.BallotRecord{
		// empty slot, unknown candidate, unknown category
		{Code: "1", Votes: models.Draft{
			"x":    {Gold: "A", Silver: "", Bronze: "ghost"},
			"gone": {Gold: "B", Silver: "C", Bronze: "A"},
		}},
		{Code: "2", Votes: nil},
	}

	result := Tally(records, categories, candidates)
	assert.Equal(t, map[string]int{"A": 3, "B": 0, "C": 0}, scores(result["x"]))
	assert.Len(t, result, 2)
	_, ok := result["gone"]
	assert.False(t, ok)
}

func TestTally_Replay(t *testing.T) {
	records := []models.BallotRecord{
		{Code: "1", Votes: models.Draft{"x": {Gold: "C", Silver: "A", Bronze: "B"}}},
		{Code: "2", Votes: models.Draft{"x": {Gold: "C", Silver: "B", Bronze: "A"}}},
		{Code: "3", Votes: models.Draft{"x": {Gold: "A", Silver: "C", Bronze: "B"}}},
	}

	first := Tally(records, categories, candidates)
	second := Tally(records, categories, candidates)
	assert.Equal(t, first, second)

	x := first["x"]
	assertSorted(t, x)
	assert.Equal(t, map[string]int{"A": 6, "B": 4, "C": 8}, scores(x))
	assert.Equal(t, []int{1, 2, 3}, []int{x[0].Rank, x[1].Rank, x[2].Rank})
}

func TestTop(t *testing.T) {
	entries := Tally(nil, categories, candidates)["x"]

	assert.Len(t, Top(entries, 2), 2)
	assert.Len(t, Top(entries, 10), 3)
	assert.Len(t, Top(entries, 0), 3)
	assert.Len(t, Top(entries, -1), 3)
	assert.Empty(t, Top(nil, 5))
}

func TestSummarize(t *testing.T) {
	records := []models.BallotRecord{
		{Code: "1111"}, {Code: "2222"}, {Code: "retired"},
	}

	s := Summarize(records, []string{"1111", "2222", "3333"})
	assert.Equal(t, Summary{BallotCount: 2, EligibleCount: 3}, s)

	assert.Equal(t, Summary{}, Summarize(nil, nil))

	// a code counts once however many records carry it
	dup := append(records, models.BallotRecord{Code: "1111"})
	assert.Equal(t, 2, Summarize(dup, []string{"1111", "2222", "3333"}).BallotCount)
}
