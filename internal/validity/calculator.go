// Package validity computes document expiry dates and classifies them against
// a clock.
//
// This is pure domain logic - no I/O, no side effects. Every function receives
// all data it needs as arguments, including "now"; nothing in this package
// reads the system clock.
package validity

import (
	"time"

	"nachweis/internal/catalog"
)

// Source tags the provenance of a computed expiry date.
type Source string

const (
	// SourceUser means a human-supplied expiry overrode the catalog rule.
	SourceUser Source = "user"
	// SourceAuto means the catalog rule computed the expiry.
	SourceAuto Source = "auto"
	// SourceNone means the rule declares no expiry.
	SourceNone Source = "none"
)

// Result is the outcome of a validity computation.
//
// Invariant: Source == SourceNone iff ValidUntil == nil, which holds exactly
// when the resolved rule is ModeNone and no user date was supplied.
type Result struct {
	ValidUntil *time.Time `json:"valid_until"`
	Source     Source     `json:"validity_source"`
}

// Compute determines when a document of the given type expires.
//
// A user-declared expiry wins unconditionally over the catalog rule, even when
// the rule says "none" or would compute a different date. This is a deliberate
// override, not a fallback: reviewers read the printed validity off the
// document itself.
//
// Rule-derived expiries use calendar-month arithmetic via time.Time.AddDate,
// so day-of-month overflow rolls into the following month (Jan 31 + 3 months
// is May 1). Tests pin this behavior.
func Compute(typeID catalog.DocumentTypeID, acceptedAt time.Time, userDate *time.Time) Result {
	if userDate != nil && !userDate.IsZero() {
		until := *userDate
		return Result{ValidUntil: &until, Source: SourceUser}
	}

	rule := catalog.Resolve(typeID)
	switch rule.Mode {
	case catalog.ModeFixedMonths, catalog.ModeMaxMonths, catalog.ModeCustom:
		until := acceptedAt.AddDate(0, rule.Months, 0)
		return Result{ValidUntil: &until, Source: SourceAuto}
	default:
		return Result{ValidUntil: nil, Source: SourceNone}
	}
}

// StrategyKind discriminates inline expiry strategies carried by ad-hoc
// document types that bypass the catalog.
type StrategyKind string

const (
	StrategyFixedDays StrategyKind = "fixed_days"
	StrategyEndOfYear StrategyKind = "end_of_year"
)

// Strategy is an inline expiry strategy. Days is meaningful for fixed_days.
type Strategy struct {
	Kind StrategyKind
	Days int
}

// ComputeFromStrategy derives an expiry from an inline strategy and the
// issuance date. Unknown strategy kinds yield nil (no computed expiry), a
// deliberately permissive default rather than an error.
func ComputeFromStrategy(s Strategy, issuedAt time.Time) *time.Time {
	switch s.Kind {
	case StrategyFixedDays:
		until := issuedAt.AddDate(0, 0, s.Days)
		return &until
	case StrategyEndOfYear:
		until := time.Date(issuedAt.Year(), time.December, 31, 23, 59, 59, 0, issuedAt.Location())
		return &until
	default:
		return nil
	}
}
