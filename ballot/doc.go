// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot validates and edits medal ballots.

A ballot draft maps every award category to three medal slots. The package
offers the data-entry operations used while a voter fills the draft and the
submission-time validator.

# Editing

	draft := ballot.NewDraft(categories)
	err := ballot.Assign(draft, "ommino", models.Gold, "4")

Assign refuses a candidate that already holds one of the other two medals of
the same category with ErrSlotTaken. Available reports the same rule per
candidate so a form can grey out competing options. Cross-category reuse of a
candidate is allowed.

# Validation

Validate walks the categories in their configured order:

  - any empty slot, or a category missing from the draft: Incomplete
  - one candidate in two slots: DuplicateWithinCategory
  - otherwise: Complete

Only the first offending category is reported. Result.Err converts a failure
into a *CategoryError wrapping ErrIncompleteBallot or ErrDuplicateWithinCategory,
so callers can use errors.Is for the kind and errors.As for the category.
*/
package ballot
