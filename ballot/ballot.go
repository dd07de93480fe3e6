// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/medal-awards/models"
)

var (
	ErrIncompleteBallot        = errors.New("ballot is incomplete")
	ErrDuplicateWithinCategory = errors.New("candidate holds more than one medal in a category")
	ErrSlotTaken               = errors.New("candidate already holds another medal in this category")
	ErrUnknownCategory         = errors.New("unknown category")
	ErrUnknownMedal            = errors.New("unknown medal")
	ErrUnknownCandidate        = errors.New("unknown candidate")
)

// Outcome is the verdict of Validate
type Outcome int

const (
	Complete Outcome = iota
	Incomplete
	DuplicateWithinCategory
)

func (o Outcome) String() string {
	switch o {
	case Complete:
		return "complete"
	case Incomplete:
		return "incomplete"
	case DuplicateWithinCategory:
		return "duplicate_within_category"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result carries the outcome and, for failures, the first offending category
type Result struct {
	Outcome  Outcome
	Category models.CategoryID
}

func (r Result) OK() bool {
	return r.Outcome == Complete
}

// Err returns nil for a complete ballot, otherwise a *CategoryError
func (r Result) Err() error {
	switch r.Outcome {
	case Incomplete:
		return &CategoryError{Category: r.Category, Err: ErrIncompleteBallot}
	case DuplicateWithinCategory:
		return &CategoryError{Category: r.Category, Err: ErrDuplicateWithinCategory}
	}
	return nil
}

// CategoryError ties a validation failure to the category the voter has to fix
type CategoryError struct {
	Category models.CategoryID
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Validate checks categories in the given order and stops at the first one
// that is not fully filled or that repeats a candidate.
func Validate(draft models.Draft, categories []models.AwardCategory) Result {
	for _, cat := range categories {
		slots, ok := draft[cat.ID]
		if !ok || !slots.Filled() {
			return Result{Outcome: Incomplete, Category: cat.ID}
		}
		if slots.Gold == slots.Silver || slots.Gold == slots.Bronze || slots.Silver == slots.Bronze {
			return Result{Outcome: DuplicateWithinCategory, Category: cat.ID}
		}
	}
	return Result{Outcome: Complete}
}

// NewDraft returns a draft with empty slots for every category
func NewDraft(categories []models.AwardCategory) models.Draft {
	d := make(models.Draft, len(categories))
	for _, cat := range categories {
		d[cat.ID] = models.Slots{}
	}
	return d
}

// Assign places candidateID in one slot of a category. A candidate already
// sitting in one of the other two slots of that category is refused rather
// than moved.
func Assign(draft models.Draft, category models.CategoryID, medal models.Medal, candidateID string) error {
	if !medal.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMedal, medal)
	}
	slots, ok := draft[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if candidateID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownCandidate)
	}
	if takenElsewhere(slots, medal, candidateID) {
		return &CategoryError{Category: category, Err: ErrSlotTaken}
	}

	draft[category] = slots.With(medal, candidateID)
	return nil
}

// Clear empties one slot of a category
func Clear(draft models.Draft, category models.CategoryID, medal models.Medal) error {
	if !medal.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMedal, medal)
	}
	slots, ok := draft[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	draft[category] = slots.With(medal, "")
	return nil
}

// Available lists every candidate for one slot, flagging the ones already
// chosen in the other two slots of the category.
func Available(draft models.Draft, category models.CategoryID, medal models.Medal, candidates []models.Candidate) ([]models.SlotOption, error) {
	if !medal.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMedal, medal)
	}
	slots, ok := draft[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	options := make([]models.SlotOption, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, models.SlotOption{
			CandidateID: c.ID,
			Name:        c.Name,
			Available:   !takenElsewhere(slots, medal, c.ID),
		})
	}
	return options, nil
}

func takenElsewhere(slots models.Slots, medal models.Medal, candidateID string) bool {
	for _, other := range models.Medals {
		if other != medal && slots.Get(other) == candidateID {
			return true
		}
	}
	return false
}
