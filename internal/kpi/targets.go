package kpi

import (
	"fmt"
	"sort"

	"github.com/salestrack/inquiry-api/internal/domain"
)

// Bracket is an inquiry-volume range with its excellence threshold.
// A nil Max means the range is unbounded above.
type Bracket struct {
	Min       int
	Max       *int
	Threshold float64
}

// BracketFromTarget converts a stored target
func BracketFromTarget(t domain.PerformanceTarget) Bracket {
	return Bracket{Min: t.MinInquiries, Max: t.MaxInquiries, Threshold: t.ExcellentThreshold}
}

// Contains reports whether count falls in the bracket
func (b Bracket) Contains(count int64) bool {
	if count < int64(b.Min) {
		return false
	}
	return b.Max == nil || count <= int64(*b.Max)
}

// Overlaps reports whether two ranges share a value. They are disjoint only
// when one ends strictly before the other begins.
func (b Bracket) Overlaps(o Bracket) bool {
	if b.Max != nil && *b.Max < o.Min {
		return false
	}
	if o.Max != nil && *o.Max < b.Min {
		return false
	}
	return true
}

// String renders the range as "[min, max]" or "[min, +inf)"
func (b Bracket) String() string {
	if b.Max == nil {
		return fmt.Sprintf("[%d, +inf)", b.Min)
	}
	return fmt.Sprintf("[%d, %d]", b.Min, *b.Max)
}

// Validate checks a single bracket in isolation
func (b Bracket) Validate() error {
	if b.Min < 0 {
		return ValidationError("min_inquiries must be non-negative, got %d", b.Min)
	}
	if b.Max != nil && *b.Max < b.Min {
		return ValidationError("max_inquiries %d is less than min_inquiries %d", *b.Max, b.Min)
	}
	if b.Threshold < 0 || b.Threshold > 100 {
		return ValidationError("excellent_threshold must be between 0 and 100, got %.2f", b.Threshold)
	}
	return nil
}

// MatchTarget returns the active target whose range contains count. Targets
// are tried in ascending min order; nil means no target is configured for
// that volume.
func MatchTarget(count int64, targets []domain.PerformanceTarget) *domain.PerformanceTarget {
	active := make([]domain.PerformanceTarget, 0, len(targets))
	for _, t := range targets {
		if t.IsActive {
			active = append(active, t)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MinInquiries < active[j].MinInquiries
	})
	for i := range active {
		if BracketFromTarget(active[i]).Contains(count) {
			return &active[i]
		}
	}
	return nil
}

// GradePerformance compares a weighted score with the bracket threshold
func GradePerformance(b Bracket, performance float64) domain.PerformanceGrade {
	if performance >= b.Threshold {
		return domain.PerformanceExcellent
	}
	return domain.PerformanceAverage
}

// ValidateAgainst checks one bracket against existing active brackets and
// names both ranges on conflict. Pass the existing set without the bracket
// being updated.
func ValidateAgainst(b Bracket, existing []Bracket) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, o := range existing {
		if b.Overlaps(o) {
			return ValidationError("range %s overlaps existing range %s", b, o)
		}
	}
	return nil
}

// ValidateSet checks every bracket and every pair in an incoming batch.
// Conflicts name the items by their 1-based position.
func ValidateSet(brackets []Bracket) error {
	active := make([]bool, len(brackets))
	for i := range active {
		active[i] = true
	}
	return ValidateBatch(brackets, active)
}

// ValidateBatch is ValidateSet where only brackets flagged active take part
// in the overlap check. Every bracket must still be valid on its own.
func ValidateBatch(brackets []Bracket, active []bool) error {
	for i, b := range brackets {
		if err := b.Validate(); err != nil {
			return ValidationError("target %d: %s", i+1, err.Error())
		}
	}
	for i := 0; i < len(brackets); i++ {
		if !active[i] {
			continue
		}
		for j := i + 1; j < len(brackets); j++ {
			if active[j] && brackets[i].Overlaps(brackets[j]) {
				return ValidationError("target %d %s overlaps target %d %s",
					i+1, brackets[i], j+1, brackets[j])
			}
		}
	}
	return nil
}
