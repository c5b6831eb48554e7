package games

import "fmt"

// ActionName identifies one of the controller's dispatchable actions.
type ActionName string

const (
	ActionStart      ActionName = "start"
	ActionScore      ActionName = "score"
	ActionOut        ActionName = "out"
	ActionAdvance    ActionName = "advance"
	ActionEnd        ActionName = "end"
	ActionCorrect    ActionName = "correct"
	ActionTransition ActionName = "transition"
)

// Action is one scoring instruction for a single game. The set of actions
// is closed; validate runs the structural checks on the payload before any
// rule evaluation.
type Action interface {
	Name() ActionName
	validate() *ValidationError
}

// StartAction moves a game into play. Status optionally selects WARMUP
// instead of the default IN_PROGRESS.
type StartAction struct {
	Status *GameStatus
}

// Name implements Action.
func (StartAction) Name() ActionName { return ActionStart }

func (a StartAction) validate() *ValidationError {
	var fields fieldErrors
	if a.Status != nil && *a.Status != StatusWarmup && *a.Status != StatusInProgress {
		fields.add("status", "must be WARMUP or IN_PROGRESS")
	}
	return fields.toError()
}

// ScoreAction credits runs to the side batting in the current half-inning.
type ScoreAction struct {
	Runs int
}

// Name implements Action.
func (ScoreAction) Name() ActionName { return ActionScore }

func (a ScoreAction) validate() *ValidationError {
	var fields fieldErrors
	if a.Runs < 0 {
		fields.add("runs", "must not be negative")
	}
	return fields.toError()
}

// OutAction records between one and three outs in a single play.
type OutAction struct {
	Count int
}

// Name implements Action.
func (OutAction) Name() ActionName { return ActionOut }

func (a OutAction) validate() *ValidationError {
	var fields fieldErrors
	if a.Count < 1 || a.Count > maxOuts {
		fields.add("count", fmt.Sprintf("must be between 1 and %d", maxOuts))
	}
	return fields.toError()
}

// AdvanceAction moves play to the next half-inning, or to an explicit
// (inning, half) position when both force fields are supplied.
type AdvanceAction struct {
	ForceInning *int
	ForceHalf   *Half
}

// Name implements Action.
func (AdvanceAction) Name() ActionName { return ActionAdvance }

func (a AdvanceAction) validate() *ValidationError {
	var fields fieldErrors
	if a.ForceInning != nil && *a.ForceInning < 1 {
		fields.add("forceInning", "must be at least 1")
	}
	if a.ForceHalf != nil && *a.ForceHalf != HalfTop && *a.ForceHalf != HalfBottom {
		fields.add("forceHalf", "must be TOP or BOTTOM")
	}
	return fields.toError()
}

// EndAction concludes play. Status defaults to FINAL; SUSPENDED pauses the
// game instead of deciding it.
type EndAction struct {
	Status *GameStatus
	Notes  string
}

// Name implements Action.
func (EndAction) Name() ActionName { return ActionEnd }

func (a EndAction) validate() *ValidationError {
	var fields fieldErrors
	if a.Status != nil {
		switch *a.Status {
		case StatusFinal, StatusSuspended, StatusPostponed, StatusCancelled:
		default:
			fields.add("status", "must be FINAL, SUSPENDED, POSTPONED or CANCELLED")
		}
	}
	return fields.toError()
}

// CorrectAction overwrites scorer mistakes. Nil fields are left untouched;
// the result must still satisfy the structural invariants.
type CorrectAction struct {
	CurrentInning    *int
	CurrentHalf      *Half
	Outs             *int
	HomeScore        *int
	AwayScore        *int
	HomeInningScores []int
	AwayInningScores []int
	Notes            *string
}

// Name implements Action.
func (CorrectAction) Name() ActionName { return ActionCorrect }

func (a CorrectAction) validate() *ValidationError {
	var fields fieldErrors
	if a.CurrentInning != nil && *a.CurrentInning < 1 {
		fields.add("currentInning", "must be at least 1")
	}
	if a.CurrentHalf != nil && *a.CurrentHalf != HalfTop && *a.CurrentHalf != HalfBottom {
		fields.add("currentHalf", "must be TOP or BOTTOM")
	}
	if a.Outs != nil && (*a.Outs < 0 || *a.Outs > maxOuts) {
		fields.add("outs", fmt.Sprintf("must be between 0 and %d", maxOuts))
	}
	if a.HomeScore != nil && *a.HomeScore < 0 {
		fields.add("homeScore", "must not be negative")
	}
	if a.AwayScore != nil && *a.AwayScore < 0 {
		fields.add("awayScore", "must not be negative")
	}
	for i, runs := range a.HomeInningScores {
		if runs < 0 {
			fields.add(fmt.Sprintf("homeInningScores[%d]", i), "must not be negative")
		}
	}
	for i, runs := range a.AwayInningScores {
		if runs < 0 {
			fields.add(fmt.Sprintf("awayInningScores[%d]", i), "must not be negative")
		}
	}
	return fields.toError()
}

// TransitionAction applies a lifecycle edge outside live play, such as
// postponing a scheduled game or reinstating a postponed one. Edges into
// and out of IN_PROGRESS delegate to start and end semantics.
type TransitionAction struct {
	Status GameStatus
	Notes  string
}

// Name implements Action.
func (TransitionAction) Name() ActionName { return ActionTransition }

func (a TransitionAction) validate() *ValidationError {
	var fields fieldErrors
	if _, ok := ParseStatus(string(a.Status)); !ok {
		fields.add("status", "unknown status")
	}
	return fields.toError()
}
