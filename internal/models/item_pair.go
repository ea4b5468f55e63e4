package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type PairStatus string

const (
	PairStatusPositive PairStatus = "positive"
	PairStatusNegative PairStatus = "negative"
)

// StatusFor derives the pair status from the equal/similar flags.
func StatusFor(areEqual, areSimilar bool) PairStatus {
	if areEqual || areSimilar {
		return PairStatusPositive
	}
	return PairStatusNegative
}

func (s PairStatus) Valid() bool {
	return s == PairStatusPositive || s == PairStatusNegative
}

// Item is a catalog listing as received from a caller. It is never stored on its own.
type Item struct {
	ItemID int64
	Title  string
}

// ItemPair is the persisted judgment for an unordered pair of items.
type ItemPair struct {
	PairID          string     `db:"pair_id"`
	ItemAID         int64      `db:"item_a_id"`
	ItemATitle      string     `db:"item_a_title"`
	ItemBID         int64      `db:"item_b_id"`
	ItemBTitle      string     `db:"item_b_title"`
	SimilarityScore float64    `db:"similarity_score"`
	AreEqual        bool       `db:"are_equal"`
	AreSimilar      bool       `db:"are_similar"`
	Status          PairStatus `db:"status"`
	Source          string     `db:"source"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	// Version is bumped on every write and used for conditional updates.
	Version int64 `db:"version"`
}

// Clone returns a copy that can be mutated without touching p.
func (p *ItemPair) Clone() *ItemPair {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// PairID returns the canonical identifier of the unordered pair {a, b}.
func PairID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// ParsePairID splits a canonical pair id back into its two item ids.
func ParsePairID(s string) (int64, int64, error) {
	left, right, ok := strings.Cut(s, "_")
	if !ok {
		return 0, 0, fmt.Errorf("invalid pair id %q", s)
	}
	a, err := strconv.ParseInt(left, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair id %q: %w", s, err)
	}
	b, err := strconv.ParseInt(right, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair id %q: %w", s, err)
	}
	if a > b || PairID(a, b) != s {
		return 0, 0, fmt.Errorf("pair id %q is not canonical", s)
	}
	return a, b, nil
}
