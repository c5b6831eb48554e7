// Package games holds the live-scoring rules core: the game state record,
// the status lifecycle, the inning progression engine, and the controller
// that applies scoring actions. Everything here is pure computation over a
// state value passed in; the package keeps no state of its own and does no
// locking. Callers that apply actions concurrently against the same game id
// must serialize at the persistence boundary (the stores do this with a
// compare-and-swap on UpdatedAt).
package games

import "time"

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusWarmup     GameStatus = "WARMUP"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCancelled  GameStatus = "CANCELLED"
	StatusSuspended  GameStatus = "SUSPENDED"
)

// Half identifies which side of an inning is at bat. The visiting team
// bats in the top half, the home team in the bottom.
type Half string

const (
	HalfTop    Half = "TOP"
	HalfBottom Half = "BOTTOM"
)

// RegulationInnings is the scheduled length of a game. Play past it is
// extra innings.
const RegulationInnings = 9

// maxOuts is the number of outs that retires a side.
const maxOuts = 3

// GameState is the canonical live-scoring record for a single game.
// CurrentInning, CurrentHalf and Outs are meaningful once the game has
// entered play; they are seeded to the first-pitch position at creation so
// every stored state satisfies the structural invariants.
type GameState struct {
	ID               string     `json:"id"`
	Status           GameStatus `json:"status"`
	HomeTeam         string     `json:"homeTeam"`
	AwayTeam         string     `json:"awayTeam"`
	StartTime        time.Time  `json:"startTime"`
	CurrentInning    int        `json:"currentInning"`
	CurrentHalf      Half       `json:"currentHalf"`
	Outs             int        `json:"outs"`
	HomeScore        int        `json:"homeScore"`
	AwayScore        int        `json:"awayScore"`
	HomeInningScores []int      `json:"homeInningScores"`
	AwayInningScores []int      `json:"awayInningScores"`
	Notes            string     `json:"notes,omitempty"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewScheduledGame seeds the state for a game that has not begun.
func NewScheduledGame(id, homeTeam, awayTeam string, startTime time.Time) GameState {
	return GameState{
		ID:               id,
		Status:           StatusScheduled,
		HomeTeam:         homeTeam,
		AwayTeam:         awayTeam,
		StartTime:        startTime,
		CurrentInning:    1,
		CurrentHalf:      HalfTop,
		HomeInningScores: []int{},
		AwayInningScores: []int{},
	}
}

// Clone returns a deep copy. The inning score sequences are copied so
// mutations on the copy never alias the original.
func (s GameState) Clone() GameState {
	out := s
	out.HomeInningScores = append([]int(nil), s.HomeInningScores...)
	out.AwayInningScores = append([]int(nil), s.AwayInningScores...)
	if s.StartedAt != nil {
		started := *s.StartedAt
		out.StartedAt = &started
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		out.EndedAt = &ended
	}
	return out
}

// IsExtraInnings reports whether play has moved past regulation.
func (s GameState) IsExtraInnings() bool {
	return s.CurrentInning > RegulationInnings
}

// IsTerminal reports whether the status has no outgoing transitions.
func (st GameStatus) IsTerminal() bool {
	return st == StatusFinal || st == StatusCancelled
}

// StateResponse is the wire shape for a single game's state.
type StateResponse struct {
	ID               string     `json:"id"`
	Status           GameStatus `json:"status"`
	HomeTeam         string     `json:"homeTeam"`
	AwayTeam         string     `json:"awayTeam"`
	StartTime        time.Time  `json:"startTime"`
	HomeScore        int        `json:"homeScore"`
	AwayScore        int        `json:"awayScore"`
	CurrentInning    int        `json:"currentInning"`
	CurrentHalf      Half       `json:"currentHalf"`
	Outs             int        `json:"outs"`
	HomeInningScores []int      `json:"homeInningScores"`
	AwayInningScores []int      `json:"awayInningScores"`
	IsExtraInnings   bool       `json:"isExtraInnings"`
	Notes            string     `json:"notes,omitempty"`
	StartedAt        *time.Time `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewStateResponse builds the wire view of a state. Inning score sequences
// are always present in the payload, never null.
func NewStateResponse(s GameState) StateResponse {
	// make+copy, not append onto nil: empty sequences must stay non-nil so
	// they marshal as [] rather than null.
	home := make([]int, len(s.HomeInningScores))
	copy(home, s.HomeInningScores)
	away := make([]int, len(s.AwayInningScores))
	copy(away, s.AwayInningScores)
	return StateResponse{
		ID:               s.ID,
		Status:           s.Status,
		HomeTeam:         s.HomeTeam,
		AwayTeam:         s.AwayTeam,
		StartTime:        s.StartTime,
		HomeScore:        s.HomeScore,
		AwayScore:        s.AwayScore,
		CurrentInning:    s.CurrentInning,
		CurrentHalf:      s.CurrentHalf,
		Outs:             s.Outs,
		HomeInningScores: home,
		AwayInningScores: away,
		IsExtraInnings:   s.IsExtraInnings(),
		Notes:            s.Notes,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ListResponse is the payload returned by GET /games.
type ListResponse struct {
	Games []StateResponse `json:"games"`
}

// NewListResponse builds a ListResponse payload.
func NewListResponse(states []GameState) ListResponse {
	views := make([]StateResponse, 0, len(states))
	for _, s := range states {
		views = append(views, NewStateResponse(s))
	}
	return ListResponse{Games: views}
}

// OutcomeResponse is the payload returned by a successful action.
type OutcomeResponse struct {
	Action        ActionName    `json:"action"`
	PreviousState StateResponse `json:"previousState"`
	NewState      StateResponse `json:"newState"`
	AutoAdvanced  bool          `json:"autoAdvanced,omitempty"`
}

// NewOutcomeResponse builds the wire view of an applied action.
func NewOutcomeResponse(o Outcome) OutcomeResponse {
	return OutcomeResponse{
		Action:        o.Action,
		PreviousState: NewStateResponse(o.Previous),
		NewState:      NewStateResponse(o.New),
		AutoAdvanced:  o.AutoAdvanced,
	}
}
