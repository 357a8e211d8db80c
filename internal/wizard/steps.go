// Package wizard describes the steps of the domain request form and validates
// the fields each step collects.
package wizard

import (
	"registrar/pkg/domain"
)

// Step names one page of the request wizard.
type Step string

const (
	StepGenericOrgType        Step = "generic_org_type"
	StepTribalGovernment      Step = "tribal_government"
	StepOrganizationFederal   Step = "organization_federal"
	StepOrganizationElection  Step = "organization_election"
	StepOrganizationContact   Step = "organization_contact"
	StepAboutYourOrganization Step = "about_your_organization"
	StepSeniorOfficial        Step = "senior_official"
	StepCurrentSites          Step = "current_sites"
	StepDotgovDomain          Step = "dotgov_domain"
	StepPurpose               Step = "purpose"
	StepOtherContacts         Step = "other_contacts"
	StepAdditionalDetails     Step = "additional_details"
	StepRequirements          Step = "requirements"
	StepReview                Step = "review"
)

// Steps lists every step in wizard order.
var Steps = []Step{ //nolint: gochecknoglobals
	StepGenericOrgType,
	StepTribalGovernment,
	StepOrganizationFederal,
	StepOrganizationElection,
	StepOrganizationContact,
	StepAboutYourOrganization,
	StepSeniorOfficial,
	StepCurrentSites,
	StepDotgovDomain,
	StepPurpose,
	StepOtherContacts,
	StepAdditionalDetails,
	StepRequirements,
	StepReview,
}

var stepTitles = map[Step]string{ //nolint: gochecknoglobals
	StepGenericOrgType:        "Type of organization",
	StepTribalGovernment:      "Tribal government",
	StepOrganizationFederal:   "Federal government branch",
	StepOrganizationElection:  "Election office",
	StepOrganizationContact:   "Organization",
	StepAboutYourOrganization: "About your organization",
	StepSeniorOfficial:        "Senior official",
	StepCurrentSites:          "Current websites",
	StepDotgovDomain:          ".gov domain",
	StepPurpose:               "Purpose of your domain",
	StepOtherContacts:         "Other employees from your organization",
	StepAdditionalDetails:     "Additional details",
	StepRequirements:          "Requirements for operating a .gov domain",
	StepReview:                "Review and submit your domain request",
}

// ParseStep returns the step named s.
func ParseStep(s string) (Step, bool) {
	step := Step(s)
	_, ok := stepTitles[step]

	return step, ok
}

// Title is the page heading of the step.
func (s Step) Title() string { return stepTitles[s] }

// Visible reports whether the step applies to the request. Some steps only
// apply to certain organization types.
func (s Step) Visible(r domain.DomainRequest) bool {
	switch s { //nolint: exhaustive
	case StepTribalGovernment:
		return r.Type == domain.OrganizationTypeTribal
	case StepOrganizationFederal:
		return r.Type == domain.OrganizationTypeFederal
	case StepOrganizationElection:
		return r.Type.HasElectionOffice()
	case StepAboutYourOrganization:
		return r.Type.NeedsAboutYourOrganization()
	default:
		return true
	}
}

// VisibleSteps returns the steps that apply to the request, in order.
func VisibleSteps(r domain.DomainRequest) []Step {
	out := make([]Step, 0, len(Steps))
	for _, s := range Steps {
		if s.Visible(r) {
			out = append(out, s)
		}
	}

	return out
}

// Next returns the visible step following s, or the empty step after the last one.
func Next(r domain.DomainRequest, s Step) Step {
	visible := VisibleSteps(r)
	for i, v := range visible {
		if v == s && i+1 < len(visible) {
			return visible[i+1]
		}
	}

	return ""
}
