package webhandler

import (
	"fmt"
	"net/url"
	"strings"

	"registrar/internal/wizard"
	"registrar/pkg/domain"
)

// maxFormRows bounds the repeated rows (websites, alternatives, contacts) read from a form.
const maxFormRows = 50

// decodeStep reads the fields step collects from a submitted form. Field
// names match the keys of the validation errors so messages land next to
// their inputs.
func decodeStep(step wizard.Step, form url.Values) domain.DomainRequest {
	var r domain.DomainRequest

	switch step { //nolint: exhaustive
	case wizard.StepGenericOrgType:
		r.Type = domain.OrganizationType(form.Get("organization_type"))
	case wizard.StepTribalGovernment:
		r.TribeName = form.Get("tribe_name")
		r.FederallyRecognizedTribe = checked(form, "federally_recognized_tribe")
		r.StateRecognizedTribe = checked(form, "state_recognized_tribe")
	case wizard.StepOrganizationFederal:
		r.FederalType = domain.FederalType(form.Get("federal_type"))
	case wizard.StepOrganizationElection:
		r.IsElectionBoard = yesNo(form, "is_election_board")
	case wizard.StepOrganizationContact:
		r.FederalAgency = form.Get("federal_agency")
		r.OrganizationName = form.Get("organization_name")
		r.AddressLine1 = form.Get("address_line1")
		r.AddressLine2 = form.Get("address_line2")
		r.City = form.Get("city")
		r.StateTerritory = form.Get("state_territory")
		r.Zipcode = form.Get("zipcode")
		r.Urbanization = form.Get("urbanization")
	case wizard.StepAboutYourOrganization:
		r.AboutYourOrganization = form.Get("about_your_organization")
	case wizard.StepSeniorOfficial:
		c := contact(form, "senior_official")
		r.SeniorOfficial = &c
	case wizard.StepCurrentSites:
		r.CurrentWebsites = rows(form, "current_websites")
	case wizard.StepDotgovDomain:
		r.RequestedDomain = form.Get("requested_domain")
		r.AlternativeDomains = rows(form, "alternative_domains")
	case wizard.StepPurpose:
		r.Purpose = form.Get("purpose")
	case wizard.StepOtherContacts:
		r.HasOtherContacts = yesNo(form, "has_other_contacts")
		r.NoOtherContactsRationale = form.Get("no_other_contacts_rationale")
		for i := range maxFormRows {
			prefix := fmt.Sprintf("other_contacts.%d", i)
			c := contact(form, prefix)
			if c == (domain.Contact{}) {
				continue
			}
			r.OtherContacts = append(r.OtherContacts, c)
		}
	case wizard.StepAdditionalDetails:
		r.HasCISARepresentative = yesNo(form, "has_cisa_representative")
		r.CISARepresentativeEmail = form.Get("cisa_representative_email")
		r.HasAnythingElse = yesNo(form, "has_anything_else")
		r.AnythingElse = form.Get("anything_else")
	case wizard.StepRequirements:
		r.IsPolicyAcknowledged = checked(form, "is_policy_acknowledged")
	}

	return r
}

func checked(form url.Values, name string) bool {
	switch strings.ToLower(form.Get(name)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// yesNo returns nil when the question was left unanswered.
func yesNo(form url.Values, name string) *bool {
	var v bool
	switch strings.ToLower(form.Get(name)) {
	case "true", "yes":
		v = true
	case "false", "no":
	default:
		return nil
	}

	return &v
}

func contact(form url.Values, prefix string) domain.Contact {
	return domain.Contact{
		FirstName:  strings.TrimSpace(form.Get(prefix + ".first_name")),
		MiddleName: strings.TrimSpace(form.Get(prefix + ".middle_name")),
		LastName:   strings.TrimSpace(form.Get(prefix + ".last_name")),
		Title:      strings.TrimSpace(form.Get(prefix + ".title")),
		Email:      strings.TrimSpace(form.Get(prefix + ".email")),
		Phone:      strings.TrimSpace(form.Get(prefix + ".phone")),
	}
}

// rows accepts both a repeated name and indexed names (name.0, name.1, ...).
// Blank rows are dropped when the step is applied, so row errors are keyed by
// position in the compacted list, which is also the list the page shows again.
func rows(form url.Values, name string) []string {
	if vals, ok := form[name]; ok {
		return vals
	}
	var out []string
	for i := range maxFormRows {
		v, ok := form[fmt.Sprintf("%s.%d", name, i)]
		if !ok {
			break
		}
		out = append(out, v[0])
	}

	return out
}
