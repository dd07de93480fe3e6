package models

// Session state constants
const (
	StateLogin     = "login"
	StateVoting    = "voting"
	StateSubmitted = "submitted"
	StateAdmin     = "admin"
)

// Medal is one of the three ranked slots of a category.
type Medal string

const (
	Gold   Medal = "gold"
	Silver Medal = "silver"
	Bronze Medal = "bronze"
)

// Medals lists the slots in canonical order.
var Medals = []Medal{Gold, Silver, Bronze}

// Points returns the fixed value of the slot: 3, 2 or 1.
// Unknown medals are worth nothing.
func (m Medal) Points() int {
	switch m {
	case Gold:
		return 3
	case Silver:
		return 2
	case Bronze:
		return 1
	}
	return 0
}

// Valid reports whether m is one of gold, silver or bronze.
func (m Medal) Valid() bool {
	return m.Points() > 0
}

// Domain types

type CategoryID string

type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AwardCategory struct {
	ID              CategoryID `json:"id"`
	Title           string     `json:"title"`
	Icon            string     `json:"icon"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description,omitempty"`
}

// Slots holds the candidate ids placed in one category.
// An empty string marks an unfilled slot.
type Slots struct {
	Gold   string `json:"gold"`
	Silver string `json:"silver"`
	Bronze string `json:"bronze"`
}

// Get returns the candidate id in slot m.
func (s Slots) Get(m Medal) string {
	switch m {
	case Gold:
		return s.Gold
	case Silver:
		return s.Silver
	case Bronze:
		return s.Bronze
	}
	return ""
}

// With returns a copy of s with slot m set to candidateID.
func (s Slots) With(m Medal, candidateID string) Slots {
	switch m {
	case Gold:
		s.Gold = candidateID
	case Silver:
		s.Silver = candidateID
	case Bronze:
		s.Bronze = candidateID
	}
	return s
}

// Filled reports whether all three slots hold a candidate.
func (s Slots) Filled() bool {
	return s.Gold != "" && s.Silver != "" && s.Bronze != ""
}

// Draft maps every category to its medal slots. A completed draft is the
// votes payload of a BallotRecord.
type Draft map[CategoryID]Slots

// Clone returns an independent copy of d.
func (d Draft) Clone() Draft {
	if d == nil {
		return nil
	}
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// BallotRecord is the persisted form of one finalized ballot.
// Timestamp is epoch milliseconds.
type BallotRecord struct {
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
	Votes     Draft  `json:"votes"`
}

// ScoreEntry is one candidate's standing in one category. It is derived from
// the stored ballots and never persisted.
type ScoreEntry struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	GoldCount   int    `json:"gold_count"`
	SilverCount int    `json:"silver_count"`
	BronzeCount int    `json:"bronze_count"`
	Rank        int    `json:"rank"` // 1-indexed, equal scores share a rank
}

// Request types

type LoginRequest struct {
	Code string `json:"code"`
}

type AssignRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	State string `json:"state"`
}

type SessionResponse struct {
	State      string         `json:"state"`
	Code       string         `json:"code,omitempty"`
	Draft      Draft          `json:"draft,omitempty"`
	LastBallot []CategoryVote `json:"last_ballot,omitempty"`
}

// SlotOption is a candidate as offered for one medal slot.
type SlotOption struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Available   bool   `json:"available"`
}

type OptionsResponse struct {
	Category CategoryID             `json:"category"`
	Slots    map[Medal][]SlotOption `json:"slots"`
}

// CategoryVote is a ballot category rendered with candidate names.
type CategoryVote struct {
	Category CategoryID `json:"category"`
	Title    string     `json:"title"`
	Icon     string     `json:"icon"`
	Gold     string     `json:"gold"`
	Silver   string     `json:"silver"`
	Bronze   string     `json:"bronze"`
}

type SubmitResponse struct {
	State   string         `json:"state"`
	Message string         `json:"message"`
	Ballot  []CategoryVote `json:"ballot"`
}

type RosterResponse struct {
	Categories []AwardCategory `json:"categories"`
	Candidates []Candidate     `json:"candidates"`
}

type CategoryLeaderboard struct {
	Category AwardCategory `json:"category"`
	Entries  []ScoreEntry  `json:"entries"`
}

type LeaderboardResponse struct {
	BallotCount   int                   `json:"ballot_count"`
	EligibleCount int                   `json:"eligible_count"`
	Categories    []CategoryLeaderboard `json:"categories"`
}

// CodeStatus is one row of the admin code roster.
type CodeStatus struct {
	Code      string `json:"code"`
	Voted     bool   `json:"voted"`
	Timestamp int64  `json:"timestamp,omitempty"`
	VotedAgo  string `json:"voted_ago,omitempty"`
}

type BallotsResponse struct {
	BallotCount   int          `json:"ballot_count"`
	EligibleCount int          `json:"eligible_count"`
	Codes         []CodeStatus `json:"codes"`
}

type BallotDetailResponse struct {
	Code      string         `json:"code"`
	Timestamp int64          `json:"timestamp"`
	VotedAgo  string         `json:"voted_ago"`
	Ballot    []CategoryVote `json:"ballot"`
}

// Error response

type ErrorResponse struct {
	Error    string     `json:"error"`
	Message  string     `json:"message,omitempty"`
	Category CategoryID `json:"category,omitempty"`
}
