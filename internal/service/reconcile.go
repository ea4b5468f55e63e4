package service

import "item-pairs/internal/models"

// PairState is where a pair sits in its lifecycle. Positive is terminal.
type PairState string

const (
	StateAbsent   PairState = "absent"
	StateNegative PairState = "negative"
	StatePositive PairState = "positive"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

func StateOf(existing *models.ItemPair) PairState {
	switch {
	case existing == nil:
		return StateAbsent
	case existing.Status == models.PairStatusPositive:
		return StatePositive
	default:
		return StateNegative
	}
}

// Decide applies the upgrade-only policy: absent pairs are created, negative
// pairs are rewritten with the fresh judgment whatever it is, and positive
// pairs are never touched again.
func Decide(existing *models.ItemPair, _ models.PairStatus) Action {
	switch StateOf(existing) {
	case StateAbsent:
		return ActionCreated
	case StateNegative:
		return ActionUpdated
	default:
		return ActionSkipped
	}
}
