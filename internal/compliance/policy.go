package compliance

import (
	"nachweis/internal/catalog"
	"nachweis/internal/contractor/models"
)

// DocumentTypeSpec names one document type a policy can require.
type DocumentTypeSpec struct {
	TypeID catalog.DocumentTypeID
	Name   string
}

// Policy is the configuration table mapping declared risk flags onto the
// document types they require. The baseline applies to every subcontractor;
// each flag list is added only on an explicit yes. Deployments inject their
// own table; DefaultPolicy covers the standard German construction set.
type Policy struct {
	Baseline          []DocumentTypeSpec
	RequiresEmployees []DocumentTypeSpec
	NonEUWorkers      []DocumentTypeSpec
	PostedAbroad      []DocumentTypeSpec
}

// DefaultPolicy returns the built-in flag-to-requirement table.
func DefaultPolicy() Policy {
	return Policy{
		Baseline: []DocumentTypeSpec{
			{TypeID: catalog.TypeHaftpflicht, Name: "Haftpflichtversicherung"},
			{TypeID: catalog.TypeGewerbeanmeldung, Name: "Gewerbeanmeldung"},
			{TypeID: catalog.TypeHandelsregisterauszug, Name: "Handelsregisterauszug"},
			{TypeID: catalog.TypeUnbedenklichkeit, Name: "Unbedenklichkeitsbescheinigung"},
			{TypeID: catalog.TypeFreistellung, Name: "Freistellungsbescheinigung"},
		},
		RequiresEmployees: []DocumentTypeSpec{
			{TypeID: catalog.TypeSokaBau, Name: "SOKA-BAU Nachweis"},
			{TypeID: catalog.TypeUnfallversicherung, Name: "Unfallversicherung"},
			{TypeID: catalog.TypeMindestlohnerklaerung, Name: "Mindestlohnerklärung"},
		},
		NonEUWorkers: []DocumentTypeSpec{
			{TypeID: catalog.TypeArbeitserlaubnis, Name: "Arbeitserlaubnis"},
		},
		PostedAbroad: []DocumentTypeSpec{
			{TypeID: catalog.TypeA1Bescheinigung, Name: "A1-Bescheinigung"},
		},
	}
}

// RequiredSet resolves the document types this contractor must supply.
// Expansion is conservative: an unknown flag behaves like an explicit no and
// never adds a requirement.
func (p Policy) RequiredSet(flags models.ComplianceFlags) []DocumentTypeSpec {
	out := make([]DocumentTypeSpec, 0, len(p.Baseline))
	seen := make(map[catalog.DocumentTypeID]bool)
	add := func(specs []DocumentTypeSpec) {
		for _, spec := range specs {
			if !seen[spec.TypeID] {
				seen[spec.TypeID] = true
				out = append(out, spec)
			}
		}
	}
	add(p.Baseline)

	switch models.TristateOf(flags.RequiresEmployees) {
	case models.TristateYes:
		add(p.RequiresEmployees)
	case models.TristateNo, models.TristateUnknown:
		// Not required; unknown must not assume a requirement.
	}
	switch models.TristateOf(flags.HasNonEUWorkers) {
	case models.TristateYes:
		add(p.NonEUWorkers)
	case models.TristateNo, models.TristateUnknown:
	}
	switch models.TristateOf(flags.EmployeesNotEmployedInGermany) {
	case models.TristateYes:
		add(p.PostedAbroad)
	case models.TristateNo, models.TristateUnknown:
	}
	return out
}
