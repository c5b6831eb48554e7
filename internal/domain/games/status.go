package games

import "strings"

// CanTransition reports whether a status change is legal under the game
// lifecycle. This table is the single authority on status edges; only the
// correct action bypasses it.
//
//	SCHEDULED  -> WARMUP, IN_PROGRESS, POSTPONED, CANCELLED
//	WARMUP     -> IN_PROGRESS, POSTPONED, CANCELLED
//	IN_PROGRESS-> FINAL, SUSPENDED
//	POSTPONED  -> SCHEDULED, CANCELLED
//	SUSPENDED  -> IN_PROGRESS, CANCELLED
//	FINAL, CANCELLED -> none (terminal)
func CanTransition(from, to GameStatus) bool {
	switch from {
	case StatusScheduled:
		return to == StatusWarmup || to == StatusInProgress || to == StatusPostponed || to == StatusCancelled
	case StatusWarmup:
		return to == StatusInProgress || to == StatusPostponed || to == StatusCancelled
	case StatusInProgress:
		return to == StatusFinal || to == StatusSuspended
	case StatusPostponed:
		return to == StatusScheduled || to == StatusCancelled
	case StatusSuspended:
		return to == StatusInProgress || to == StatusCancelled
	default:
		return false
	}
}

// ParseStatus canonicalizes a status label from a payload.
func ParseStatus(value string) (GameStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "SCHEDULED":
		return StatusScheduled, true
	case "WARMUP":
		return StatusWarmup, true
	case "IN_PROGRESS":
		return StatusInProgress, true
	case "FINAL":
		return StatusFinal, true
	case "POSTPONED":
		return StatusPostponed, true
	case "CANCELLED":
		return StatusCancelled, true
	case "SUSPENDED":
		return StatusSuspended, true
	default:
		return "", false
	}
}

// ParseHalf canonicalizes a half-inning label from a payload.
func ParseHalf(value string) (Half, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TOP":
		return HalfTop, true
	case "BOTTOM":
		return HalfBottom, true
	default:
		return "", false
	}
}
