// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - Candidate: a person who can receive medals (id, name)
  - AwardCategory: one award being voted on
  - Medal: gold, silver or bronze, worth 3, 2 and 1 points
  - Slots: the three medal slots of one category
  - Draft: category id -> Slots, the in-progress or finalized ballot
  - BallotRecord: code, timestamp (epoch millis) and votes
  - ScoreEntry: derived per-category standing of a candidate

BallotRecord keeps the JSON layout of the persisted ballot array:

	{"code":"1111","timestamp":1735689600000,
	 "votes":{"cagnolino":{"gold":"1","silver":"2","bronze":"3"}}}

# Request Types

  - LoginRequest: code
  - AssignRequest: candidate_id

# Response Types

  - LoginResponse: token, state
  - SessionResponse: state, code, draft, last_ballot
  - OptionsResponse: per-slot candidate availability
  - SubmitResponse: state, message, ballot
  - RosterResponse: categories, candidates
  - LeaderboardResponse, BallotsResponse, BallotDetailResponse: admin views
  - ErrorResponse: error, message, category

# Constants

Session states:

	StateLogin     = "login"
	StateVoting    = "voting"
	StateSubmitted = "submitted"
	StateAdmin     = "admin"
*/
package models
