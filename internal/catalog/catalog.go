// Package catalog maps document types to their validity rules.
//
// The catalog is the single source of truth for whether a compliance document
// expires and how its expiry is derived. Lookup is total: unknown document
// types resolve to the wildcard fallback, never to an error. Under-requiring
// is acceptable for ad-hoc document types; crashing a compliance check is not.
package catalog

// DocumentTypeID identifies a kind of required compliance document.
//
// Well-known IDs are the German construction compliance set below. Ad-hoc
// document types created per project carry arbitrary IDs and resolve through
// the wildcard entry.
type DocumentTypeID string

// Well-known document types.
const (
	TypeHaftpflicht           DocumentTypeID = "haftpflicht"
	TypeBetriebshaftpflicht   DocumentTypeID = "betriebshaftpflicht"
	TypeUnfallversicherung    DocumentTypeID = "unfallversicherung"
	TypeGewerbeanmeldung      DocumentTypeID = "gewerbeanmeldung"
	TypeHandelsregisterauszug DocumentTypeID = "handelsregisterauszug"
	TypeUnbedenklichkeit      DocumentTypeID = "unbedenklichkeitsbescheinigung"
	TypeFreistellung          DocumentTypeID = "freistellungsbescheinigung"
	TypeA1Bescheinigung       DocumentTypeID = "a1_bescheinigung"
	TypeArbeitserlaubnis      DocumentTypeID = "arbeitserlaubnis"
	TypeSokaBau               DocumentTypeID = "soka_bau"
	TypeMindestlohnerklaerung DocumentTypeID = "mindestlohnerklaerung"

	// TypeWildcard is the fallback entry for document types without a
	// dedicated rule.
	TypeWildcard DocumentTypeID = "custom:*"
)

// RuleMode discriminates the validity rule variants.
type RuleMode string

const (
	// ModeNone marks documents that never expire.
	ModeNone RuleMode = "none"
	// ModeFixedMonths grants N months of validity from the acceptance date.
	ModeFixedMonths RuleMode = "fixed_months"
	// ModeMaxMonths caps how old a document may be at acceptance time.
	// Computationally identical to ModeFixedMonths today; kept as a distinct
	// variant because the semantic intent differs and product may split the
	// arithmetic later.
	ModeMaxMonths RuleMode = "max_months"
	// ModeCustom covers irregular real-world rules. Note carries the policy
	// text; DefaultMonths is the fallback window when no other signal exists.
	ModeCustom RuleMode = "custom"
)

// ValidityRule is the tagged variant describing how a document type expires.
// Months is meaningful for fixed_months, max_months and custom (as the
// default window); Note only for custom.
type ValidityRule struct {
	Mode   RuleMode
	Months int
	Note   string
}

// rules is the single source of truth for the built-in catalog.
var rules = map[DocumentTypeID]ValidityRule{
	TypeHaftpflicht:           {Mode: ModeFixedMonths, Months: 12},
	TypeBetriebshaftpflicht:   {Mode: ModeFixedMonths, Months: 12},
	TypeUnfallversicherung:    {Mode: ModeFixedMonths, Months: 12},
	TypeSokaBau:               {Mode: ModeFixedMonths, Months: 12},
	TypeMindestlohnerklaerung: {Mode: ModeFixedMonths, Months: 12},
	TypeUnbedenklichkeit:      {Mode: ModeFixedMonths, Months: 3},
	TypeGewerbeanmeldung:      {Mode: ModeNone},
	TypeHandelsregisterauszug: {Mode: ModeMaxMonths, Months: 3},
	TypeFreistellung: {
		Mode:   ModeCustom,
		Months: 36,
		Note:   "Finanzamt issues with its own printed validity; fall back to three years when none is declared",
	},
	TypeA1Bescheinigung: {
		Mode:   ModeCustom,
		Months: 24,
		Note:   "valid per posting period, at most 24 months",
	},
	TypeArbeitserlaubnis: {
		Mode:   ModeCustom,
		Months: 12,
		Note:   "bound to the residence permit of the individual worker",
	},
	TypeWildcard: {Mode: ModeFixedMonths, Months: 12},
}

// Resolve returns the validity rule for a document type. Exact match first,
// then the wildcard fallback. Never fails: absence of a dedicated entry is the
// designed fallback path, not an error condition.
func Resolve(typeID DocumentTypeID) ValidityRule {
	if rule, ok := rules[typeID]; ok {
		return rule
	}
	return rules[TypeWildcard]
}

// HasExpiry reports whether documents of this type expire at all.
func HasExpiry(typeID DocumentTypeID) bool {
	return Resolve(typeID).Mode != ModeNone
}

func (id DocumentTypeID) String() string {
	return string(id)
}
