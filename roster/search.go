// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/danielhkuo/medal-awards/models"
)

// Search returns the candidates whose name fuzzily matches query, best match
// first. Matching ignores case and diacritics. An empty query returns the whole
// roster in roster order.
func (r *Roster) Search(query string) []models.Candidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]models.Candidate(nil), r.Candidates...)
	}

	names := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		names[i] = c.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]models.Candidate, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, r.Candidates[rank.OriginalIndex])
	}
	return out
}
