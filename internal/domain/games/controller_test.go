package games

import (
	"reflect"
	"testing"
	"time"
)

func fixedController() *Controller {
	return NewController(func() time.Time { return testNow })
}

func TestControllerApplyStart(t *testing.T) {
	ctrl := fixedController()

	outcome, err := ctrl.Apply(scheduledState(), StartAction{})
	if err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if outcome.Action != ActionStart {
		t.Fatalf("expected action start got %s", outcome.Action)
	}
	if outcome.Previous.Status != StatusScheduled || outcome.New.Status != StatusInProgress {
		t.Fatalf("expected scheduled->in_progress, got %s->%s", outcome.Previous.Status, outcome.New.Status)
	}
	if !outcome.New.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected updatedAt stamped at %v, got %v", testNow, outcome.New.UpdatedAt)
	}
}

func TestControllerValidatesBeforeRules(t *testing.T) {
	ctrl := fixedController()

	// A final game cannot record outs, but the malformed count must be
	// reported first, per field.
	s := scheduledState()
	s.Status = StatusFinal

	_, err := ctrl.Apply(s, OutAction{Count: 5})
	valErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected structural validation first, got %v", err)
	}
	if len(valErr.Fields) != 1 || valErr.Fields[0].Field != "count" {
		t.Fatalf("expected a single finding on count, got %v", valErr.Fields)
	}
}

func TestControllerRejectionLeavesNoOutcome(t *testing.T) {
	ctrl := fixedController()
	s := scheduledState()

	outcome, err := ctrl.Apply(s, ScoreAction{Runs: 1})
	if err == nil {
		t.Fatalf("expected rejection for scoring a scheduled game")
	}
	if !reflect.DeepEqual(outcome, Outcome{}) {
		t.Fatalf("expected zero outcome on rejection, got %+v", outcome)
	}
}

func TestControllerNilAction(t *testing.T) {
	ctrl := fixedController()
	if _, err := ctrl.Apply(scheduledState(), nil); err == nil {
		t.Fatalf("expected nil action to be rejected")
	}
}

func TestControllerAutoAdvanceFlag(t *testing.T) {
	ctrl := fixedController()
	s := inProgressState()
	s.Outs = 2

	outcome, err := ctrl.Apply(s, OutAction{Count: 1})
	if err != nil {
		t.Fatalf("expected out to succeed, got %v", err)
	}
	if !outcome.AutoAdvanced {
		t.Fatalf("expected autoAdvanced on the third out")
	}

	outcome, err = ctrl.Apply(inProgressState(), OutAction{Count: 1})
	if err != nil {
		t.Fatalf("expected out to succeed, got %v", err)
	}
	if outcome.AutoAdvanced {
		t.Fatalf("expected no autoAdvanced on the first out")
	}
}

func TestControllerPreviousIsSnapshot(t *testing.T) {
	ctrl := fixedController()
	s := inProgressState()

	outcome, err := ctrl.Apply(s, ScoreAction{Runs: 3})
	if err != nil {
		t.Fatalf("expected score to succeed, got %v", err)
	}

	// Mutating the outcome's states must not reach the caller's copy.
	outcome.Previous.AwayInningScores[0] = 99
	outcome.New.AwayInningScores[0] = 99
	if s.AwayInningScores[0] != 0 {
		t.Fatalf("expected the input state isolated from outcome mutations, got %v", s.AwayInningScores)
	}
}

func TestControllerSumInvariantAfterEveryAction(t *testing.T) {
	ctrl := fixedController()
	s := scheduledState()

	actions := []Action{
		StartAction{},
		ScoreAction{Runs: 2},
		OutAction{Count: 3},
		ScoreAction{Runs: 1},
		OutAction{Count: 2},
		OutAction{Count: 1},
		ScoreAction{Runs: 4},
		AdvanceAction{},
	}

	for i, action := range actions {
		outcome, err := ctrl.Apply(s, action)
		if err != nil {
			t.Fatalf("action %d (%s): %v", i, action.Name(), err)
		}
		s = outcome.New
		if sumScores(s.HomeInningScores) != s.HomeScore {
			t.Fatalf("action %d: home sum %d != %d", i, sumScores(s.HomeInningScores), s.HomeScore)
		}
		if sumScores(s.AwayInningScores) != s.AwayScore {
			t.Fatalf("action %d: away sum %d != %d", i, sumScores(s.AwayInningScores), s.AwayScore)
		}
	}

	if s.AwayScore != 6 || s.HomeScore != 1 {
		t.Fatalf("expected away 6 home 1, got away %d home %d", s.AwayScore, s.HomeScore)
	}
}

func TestControllerFullGameToWalkOff(t *testing.T) {
	ctrl := fixedController()
	s := scheduledState()

	outcome, err := ctrl.Apply(s, StartAction{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	s = outcome.New

	// Eight and a half scoreless innings: three outs per half.
	for half := 0; half < 17; half++ {
		outcome, err = ctrl.Apply(s, OutAction{Count: 3})
		if err != nil {
			t.Fatalf("half %d: %v", half, err)
		}
		if !outcome.AutoAdvanced {
			t.Fatalf("half %d: expected auto-advance", half)
		}
		s = outcome.New
	}
	if s.CurrentInning != 9 || s.CurrentHalf != HalfBottom {
		t.Fatalf("expected bottom of the ninth, got %s of %d", s.CurrentHalf, s.CurrentInning)
	}

	outcome, err = ctrl.Apply(s, ScoreAction{Runs: 1})
	if err != nil {
		t.Fatalf("walk-off run: %v", err)
	}
	s = outcome.New
	if !IsWalkOff(s) {
		t.Fatalf("expected a walk-off position, got %+v", s)
	}

	outcome, err = ctrl.Apply(s, EndAction{})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if outcome.New.Status != StatusFinal {
		t.Fatalf("expected FINAL got %s", outcome.New.Status)
	}
}

func TestControllerCorrectIsDistinguishable(t *testing.T) {
	ctrl := fixedController()
	s := inProgressState()
	outs := 2

	outcome, err := ctrl.Apply(s, CorrectAction{Outs: &outs})
	if err != nil {
		t.Fatalf("expected correction to succeed, got %v", err)
	}
	if outcome.Action != ActionCorrect {
		t.Fatalf("expected the outcome to name the correction, got %s", outcome.Action)
	}
}

func TestControllerDefaultClock(t *testing.T) {
	ctrl := NewController(nil)
	before := time.Now()

	outcome, err := ctrl.Apply(scheduledState(), StartAction{})
	if err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if outcome.New.UpdatedAt.Before(before) {
		t.Fatalf("expected the default clock to stamp a current time")
	}
}
