package games

import (
	"fmt"
	"time"
)

// The functions below are the inning progression engine. Each takes the
// current state and an action payload and returns the next state; on any
// rejection the input state is returned unchanged. None of them mutate
// their argument.

func applyStart(s GameState, a StartAction, now time.Time) (GameState, error) {
	switch s.Status {
	case StatusScheduled, StatusWarmup, StatusSuspended:
	default:
		return s, ruleErrorf(CodeCannotStart, "cannot start game %s in status %s", s.ID, s.Status)
	}

	target := StatusInProgress
	if a.Status != nil {
		target = *a.Status
	}
	if !CanTransition(s.Status, target) {
		return s, transitionError(s.Status, target)
	}

	next := s.Clone()
	next.Status = target
	if target == StatusInProgress {
		if next.StartedAt == nil {
			// First pitch: seed the count and open the away side's line.
			next.CurrentInning = 1
			next.CurrentHalf = HalfTop
			next.Outs = 0
			next = padBattingSide(next)
			started := now
			next.StartedAt = &started
		}
		// A resumed game keeps its inning, half and outs.
		next.EndedAt = nil
	}
	return next, nil
}

func applyScore(s GameState, a ScoreAction) (GameState, error) {
	if s.Status != StatusInProgress {
		return s, ruleErrorf(CodeCannotScore, "cannot record runs for game %s in status %s", s.ID, s.Status)
	}

	next := s.Clone()
	next = padBattingSide(next)
	idx := next.CurrentInning - 1
	if next.CurrentHalf == HalfTop {
		next.AwayInningScores[idx] += a.Runs
		next.AwayScore = sumScores(next.AwayInningScores)
	} else {
		next.HomeInningScores[idx] += a.Runs
		next.HomeScore = sumScores(next.HomeInningScores)
	}
	return next, nil
}

func applyOut(s GameState, a OutAction) (GameState, bool, error) {
	if s.Status != StatusInProgress {
		return s, false, ruleErrorf(CodeCannotScore, "cannot record outs for game %s in status %s", s.ID, s.Status)
	}

	total := s.Outs + a.Count
	if total > maxOuts {
		return s, false, ruleErrorf(CodeInvalidOutCount,
			"recording %d outs with %d already made would exceed %d", a.Count, s.Outs, maxOuts)
	}

	next := s.Clone()
	if total == maxOuts {
		// Side retired: the half-inning rolls over and the count resets.
		next = advanceHalf(next)
		return next, true, nil
	}
	next.Outs = total
	return next, false, nil
}

func applyAdvance(s GameState, a AdvanceAction) (GameState, error) {
	if (a.ForceInning == nil) != (a.ForceHalf == nil) {
		return s, ruleErrorf(CodeIncompleteForceSpec,
			"forceInning and forceHalf must be supplied together or not at all")
	}
	if s.Status != StatusInProgress {
		return s, ruleErrorf(CodeCannotScore, "cannot advance half-inning for game %s in status %s", s.ID, s.Status)
	}

	next := s.Clone()
	if a.ForceInning != nil {
		next.CurrentInning = *a.ForceInning
		next.CurrentHalf = *a.ForceHalf
		next.Outs = 0
		return padBattingSide(next), nil
	}
	return advanceHalf(next), nil
}

func applyEnd(s GameState, a EndAction, now time.Time) (GameState, error) {
	target := StatusFinal
	if a.Status != nil {
		target = *a.Status
	}

	if target == StatusFinal {
		if err := CanEnd(s); err != nil {
			return s, err
		}
	} else if s.Status != StatusInProgress {
		return s, ruleErrorf(CodeCanOnlyEndInProgress, "cannot end game %s in status %s", s.ID, s.Status)
	}
	if !CanTransition(s.Status, target) {
		return s, transitionError(s.Status, target)
	}

	next := s.Clone()
	next.Status = target
	ended := now
	next.EndedAt = &ended
	if a.Notes != "" {
		next.Notes = a.Notes
	}
	return next, nil
}

func applyCorrect(s GameState, a CorrectAction) (GameState, error) {
	next := s.Clone()
	if a.CurrentInning != nil {
		next.CurrentInning = *a.CurrentInning
	}
	if a.CurrentHalf != nil {
		next.CurrentHalf = *a.CurrentHalf
	}
	if a.Outs != nil {
		next.Outs = *a.Outs
	}
	if a.HomeScore != nil {
		next.HomeScore = *a.HomeScore
	}
	if a.AwayScore != nil {
		next.AwayScore = *a.AwayScore
	}
	if a.HomeInningScores != nil {
		next.HomeInningScores = append([]int(nil), a.HomeInningScores...)
	}
	if a.AwayInningScores != nil {
		next.AwayInningScores = append([]int(nil), a.AwayInningScores...)
	}
	if a.Notes != nil {
		next.Notes = *a.Notes
	}
	if verr := checkStructural(next); verr != nil {
		return s, verr
	}
	return next, nil
}

func applyTransition(s GameState, a TransitionAction, now time.Time) (GameState, error) {
	switch a.Status {
	case StatusInProgress:
		return applyStart(s, StartAction{}, now)
	case StatusFinal, StatusSuspended:
		if s.Status == StatusInProgress {
			target := a.Status
			return applyEnd(s, EndAction{Status: &target, Notes: a.Notes}, now)
		}
	}

	if !CanTransition(s.Status, a.Status) {
		return s, transitionError(s.Status, a.Status)
	}

	next := s.Clone()
	next.Status = a.Status
	if a.Notes != "" {
		next.Notes = a.Notes
	}
	switch a.Status {
	case StatusPostponed, StatusCancelled:
		ended := now
		next.EndedAt = &ended
	case StatusScheduled:
		// POSTPONED -> SCHEDULED reinstates the game.
		next.EndedAt = nil
	}
	return next, nil
}

// advanceHalf is the single half-inning transition rule, shared by the
// three-out auto-advance and manual advancement: top rolls to the bottom
// of the same inning, bottom rolls to the top of the next. The incoming
// side always starts with nobody out.
func advanceHalf(s GameState) GameState {
	if s.CurrentHalf == HalfTop {
		s.CurrentHalf = HalfBottom
	} else {
		s.CurrentHalf = HalfTop
		s.CurrentInning++
	}
	s.Outs = 0
	return padBattingSide(s)
}

// padBattingSide extends the batting side's inning score sequence with
// zeros through the current inning, keeping one entry per reached inning.
// Appending zeros never disturbs the sum invariant.
func padBattingSide(s GameState) GameState {
	if s.CurrentHalf == HalfTop {
		s.AwayInningScores = padScores(s.AwayInningScores, s.CurrentInning)
	} else {
		s.HomeInningScores = padScores(s.HomeInningScores, s.CurrentInning)
	}
	return s
}

func padScores(scores []int, innings int) []int {
	for len(scores) < innings {
		scores = append(scores, 0)
	}
	return scores
}

func sumScores(scores []int) int {
	total := 0
	for _, runs := range scores {
		total += runs
	}
	return total
}

// checkStructural verifies the invariants every stored state must satisfy:
// outs within range, non-negative run counts, and inning totals equal to
// the sum of their sequences. An empty sequence counts as zero.
func checkStructural(s GameState) *ValidationError {
	var fields fieldErrors
	if s.CurrentInning < 1 {
		fields.add("currentInning", "must be at least 1")
	}
	if s.CurrentHalf != HalfTop && s.CurrentHalf != HalfBottom {
		fields.add("currentHalf", "must be TOP or BOTTOM")
	}
	if s.Outs < 0 || s.Outs > maxOuts {
		fields.add("outs", "must be between 0 and 3")
	}
	if s.HomeScore < 0 {
		fields.add("homeScore", "must not be negative")
	}
	if s.AwayScore < 0 {
		fields.add("awayScore", "must not be negative")
	}
	if sum := sumScores(s.HomeInningScores); sum != s.HomeScore {
		fields.add("homeScore", fmt.Sprintf("homeInningScores sum to %d, score is %d", sum, s.HomeScore))
	}
	if sum := sumScores(s.AwayInningScores); sum != s.AwayScore {
		fields.add("awayScore", fmt.Sprintf("awayInningScores sum to %d, score is %d", sum, s.AwayScore))
	}
	return fields.toError()
}
