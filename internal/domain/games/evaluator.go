package games

// CanEnd reports whether the game may legally be decided, returning nil
// when a transition to FINAL is authorized and a RuleError naming the
// blocking rule otherwise.
//
// A game may end once any side leads: a lead in the ninth inning or later
// is a regulation win (a home lead in the bottom half being the walk-off
// case), and a lead before the ninth is an early end — weather, mercy rule
// or manager discretion — which this evaluator never blocks; whether an
// early end needs extra approval is upstream policy. A tie never
// authorizes an end, whatever the inning: play continues into extra
// innings until one side leads.
//
// The away-win check does not verify that the top of the final inning was
// completed; ending mid-top with the away side ahead counts as an operator
// early end rather than a rules violation.
func CanEnd(s GameState) error {
	if s.Status != StatusInProgress {
		return ruleErrorf(CodeCanOnlyEndInProgress, "cannot end game %s in status %s", s.ID, s.Status)
	}
	if s.HomeScore == s.AwayScore {
		if s.CurrentInning < RegulationInnings {
			return ruleErrorf(CodeRegulationNotComplete,
				"regulation not complete: tied %d-%d in inning %d", s.HomeScore, s.AwayScore, s.CurrentInning)
		}
		return ruleErrorf(CodeRegulationNotComplete,
			"tied %d-%d: extra innings continue until one side leads", s.HomeScore, s.AwayScore)
	}
	return nil
}

// IsWalkOff reports whether the state sits in a walk-off position: the
// home side ahead in its own half of the ninth inning or later.
func IsWalkOff(s GameState) bool {
	return s.CurrentInning >= RegulationInnings &&
		s.CurrentHalf == HalfBottom &&
		s.HomeScore > s.AwayScore
}
