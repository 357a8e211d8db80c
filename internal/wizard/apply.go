package wizard

import (
	"strings"

	"registrar/pkg/domain"
)

// Apply copies the fields collected by step from src into dst. Fields of
// other steps are left untouched, so a step cannot overwrite data it does not own.
func Apply(step Step, dst *domain.DomainRequest, src domain.DomainRequest) {
	switch step { //nolint: exhaustive
	case StepGenericOrgType:
		dst.Type = src.Type
	case StepTribalGovernment:
		dst.TribeName = strings.TrimSpace(src.TribeName)
		dst.FederallyRecognizedTribe = src.FederallyRecognizedTribe
		dst.StateRecognizedTribe = src.StateRecognizedTribe
	case StepOrganizationFederal:
		dst.FederalType = src.FederalType
	case StepOrganizationElection:
		dst.IsElectionBoard = src.IsElectionBoard
	case StepOrganizationContact:
		dst.FederalAgency = strings.TrimSpace(src.FederalAgency)
		dst.OrganizationName = strings.TrimSpace(src.OrganizationName)
		dst.AddressLine1 = strings.TrimSpace(src.AddressLine1)
		dst.AddressLine2 = strings.TrimSpace(src.AddressLine2)
		dst.City = strings.TrimSpace(src.City)
		dst.StateTerritory = strings.ToUpper(strings.TrimSpace(src.StateTerritory))
		dst.Zipcode = strings.TrimSpace(src.Zipcode)
		dst.Urbanization = strings.TrimSpace(src.Urbanization)
	case StepAboutYourOrganization:
		dst.AboutYourOrganization = src.AboutYourOrganization
	case StepSeniorOfficial:
		dst.SeniorOfficial = src.SeniorOfficial
	case StepCurrentSites:
		dst.CurrentWebsites = compact(src.CurrentWebsites)
	case StepDotgovDomain:
		dst.RequestedDomain = canonicalDomain(src.RequestedDomain)
		alts := make([]string, 0, len(src.AlternativeDomains))
		for _, a := range compact(src.AlternativeDomains) {
			alts = append(alts, canonicalDomain(a))
		}
		dst.AlternativeDomains = alts
	case StepPurpose:
		dst.Purpose = src.Purpose
	case StepOtherContacts:
		dst.HasOtherContacts = src.HasOtherContacts
		switch {
		case src.HasOtherContacts == nil:
		case *src.HasOtherContacts:
			dst.OtherContacts = src.OtherContacts
			dst.NoOtherContactsRationale = ""
		default:
			dst.OtherContacts = []domain.Contact{}
			dst.NoOtherContactsRationale = src.NoOtherContactsRationale
		}
	case StepAdditionalDetails:
		dst.HasCISARepresentative = src.HasCISARepresentative
		dst.CISARepresentativeEmail = ""
		if src.HasCISARepresentative != nil && *src.HasCISARepresentative {
			dst.CISARepresentativeEmail = domain.NormalizeEmail(src.CISARepresentativeEmail)
		}
		dst.HasAnythingElse = src.HasAnythingElse
		dst.AnythingElse = ""
		if src.HasAnythingElse != nil && *src.HasAnythingElse {
			dst.AnythingElse = src.AnythingElse
		}
	case StepRequirements:
		dst.IsPolicyAcknowledged = src.IsPolicyAcknowledged
	}
}

// canonicalDomain returns the full name of well formed input and keeps
// malformed input as typed so the form can show it back.
func canonicalDomain(name string) string {
	label, code := CheckDomainSyntax(name)
	if code != "" {
		return strings.TrimSpace(name)
	}

	return FullDomain(label)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
