// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package roster supplies the static configuration of an awards ballot: the
// access codes, the admin code, the candidates and the award categories.
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danielhkuo/medal-awards/auth"
	"github.com/danielhkuo/medal-awards/models"
)

var (
	ErrNoCodes            = errors.New("at least one voting code is required")
	ErrNoAdminCode        = errors.New("admin code is required")
	ErrAdminCodeCollision = errors.New("admin code collides with a voting code")
	ErrDuplicateCode      = errors.New("duplicate voting code")
	ErrPaddedCode         = errors.New("code has surrounding whitespace")
	ErrNoCandidates       = errors.New("at least one candidate is required")
	ErrDuplicateCandidate = errors.New("duplicate candidate id")
	ErrNoCategories       = errors.New("at least one award category is required")
	ErrDuplicateCategory  = errors.New("duplicate category id")
)

// Roster is immutable once validated. Candidate and category order is
// significant: it is the display order and the tally tie-break order.
type Roster struct {
	Codes      []string               `json:"codes"`
	AdminCode  string                 `json:"admin_code"`
	Candidates []models.Candidate     `json:"candidates"`
	Categories []models.AwardCategory `json:"categories"`
}

// Load reads a JSON roster file and validates it
func Load(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var r Roster
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}
	r.Codes = normalizeCodes(r.Codes)
	r.AdminCode = auth.NormalizeCode(r.AdminCode)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// WithCodes returns a copy of r using the given voting codes and admin code,
// trimmed the way login trims typed codes. Empty arguments keep the current
// values.
func (r *Roster) WithCodes(codes []string, adminCode string) *Roster {
	out := *r
	if len(codes) > 0 {
		out.Codes = normalizeCodes(codes)
	}
	if adminCode != "" {
		out.AdminCode = auth.NormalizeCode(adminCode)
	}
	return &out
}

func normalizeCodes(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = auth.NormalizeCode(c)
	}
	return out
}

// Validate checks the invariants every other package relies on
func (r *Roster) Validate() error {
	if len(r.Codes) == 0 {
		return ErrNoCodes
	}
	if r.AdminCode == "" {
		return ErrNoAdminCode
	}
	if r.AdminCode != auth.NormalizeCode(r.AdminCode) {
		return fmt.Errorf("%w: admin code", ErrPaddedCode)
	}
	seenCodes := make(map[string]bool, len(r.Codes))
	for _, code := range r.Codes {
		if code == "" {
			return fmt.Errorf("%w: empty code", ErrNoCodes)
		}
		if code != auth.NormalizeCode(code) {
			return fmt.Errorf("%w: %q", ErrPaddedCode, code)
		}
		if code == r.AdminCode {
			return ErrAdminCodeCollision
		}
		if seenCodes[code] {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		seenCodes[code] = true
	}

	if len(r.Candidates) == 0 {
		return ErrNoCandidates
	}
	seenCandidates := make(map[string]bool, len(r.Candidates))
	for _, c := range r.Candidates {
		if c.ID == "" || seenCandidates[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateCandidate, c.ID)
		}
		seenCandidates[c.ID] = true
	}

	if len(r.Categories) == 0 {
		return ErrNoCategories
	}
	seenCategories := make(map[models.CategoryID]bool, len(r.Categories))
	for _, c := range r.Categories {
		if c.ID == "" || seenCategories[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, c.ID)
		}
		seenCategories[c.ID] = true
	}
	return nil
}

// IsAdminCode reports whether code is the administrator code
func (r *Roster) IsAdminCode(code string) bool {
	return auth.CodesEqual(code, r.AdminCode)
}

// IsVotingCode reports whether code is on the voting allow-list
func (r *Roster) IsVotingCode(code string) bool {
	found := false
	for _, c := range r.Codes {
		// no early exit, keep the scan time independent of the position
		if auth.CodesEqual(code, c) {
			found = true
		}
	}
	return found
}

func (r *Roster) Candidate(id string) (models.Candidate, bool) {
	for _, c := range r.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return models.Candidate{}, false
}

// CandidateName falls back to the raw id for candidates no longer on the roster
func (r *Roster) CandidateName(id string) string {
	if c, ok := r.Candidate(id); ok {
		return c.Name
	}
	return id
}

func (r *Roster) Category(id models.CategoryID) (models.AwardCategory, bool) {
	for _, c := range r.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.AwardCategory{}, false
}

// RenderBallot lists the votes of a draft category by category, in roster
// order, with candidate names instead of ids
func (r *Roster) RenderBallot(votes models.Draft) []models.CategoryVote {
	out := make([]models.CategoryVote, 0, len(r.Categories))
	for _, cat := range r.Categories {
		slots := votes[cat.ID]
		out = append(out, models.CategoryVote{
			Category: cat.ID,
			Title:    cat.Title,
			Icon:     cat.Icon,
			Gold:     r.nameOrEmpty(slots.Gold),
			Silver:   r.nameOrEmpty(slots.Silver),
			Bronze:   r.nameOrEmpty(slots.Bronze),
		})
	}
	return out
}

func (r *Roster) nameOrEmpty(id string) string {
	if id == "" {
		return ""
	}
	return r.CandidateName(id)
}
