package wizard

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/validate"
)

// Availability error codes returned by CheckDomain.
const (
	DomainRequired    = "required"
	DomainExtraDots   = "extra_dots"
	DomainInvalid     = "invalid"
	DomainUnavailable = "unavailable"
)

var domainMessages = map[string]string{ //nolint: gochecknoglobals
	DomainRequired: "Enter the .gov domain you want. Don’t include “www” or “.gov.” " +
		"For example, if you want www.city.gov, you would enter “city” (without the quotes).",
	DomainExtraDots:   "Enter the .gov domain you want without any periods.",
	DomainInvalid:     "Enter a domain using only letters, numbers, or hyphens (though we don't recommend using hyphens).",
	DomainUnavailable: "That domain isn’t available. Read more about choosing your .gov domain.",
}

// DomainMessage returns the message shown for an availability error code.
func DomainMessage(code string) string { return domainMessages[code] }

const (
	maxTextLength      = 2000
	maxRationaleLength = 1000
)

// Limits bound the repeated fields of a request.
type Limits struct {
	MaxAlternativeDomains int
	MaxOtherContacts      int
}

// DomainLookup finds registered domains by full name.
type DomainLookup interface {
	DomainByName(ctx context.Context, name string) (*domain.Domain, error)
}

// Validator checks the fields of wizard steps.
type Validator struct {
	limits Limits
	lookup DomainLookup
}

// NewValidator creates a validator. lookup is used to reject domains that are
// already registered.
func NewValidator(lookup DomainLookup, limits Limits) *Validator {
	if limits.MaxAlternativeDomains <= 0 {
		limits.MaxAlternativeDomains = 10
	}
	if limits.MaxOtherContacts <= 0 {
		limits.MaxOtherContacts = 10
	}

	return &Validator{limits: limits, lookup: lookup}
}

// NormalizeDomain trims, lower-cases and strips a trailing ".gov" and a
// leading "www.".
func NormalizeDomain(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, "."+domain.TopLevelDomain)
	name = strings.TrimPrefix(name, "www.")

	return name
}

// FullDomain appends the top level domain to a normalized label.
func FullDomain(label string) string {
	return label + "." + domain.TopLevelDomain
}

// CheckDomainSyntax returns the normalized label and an error code, or an
// empty code when the name is well formed.
func CheckDomainSyntax(name string) (string, string) {
	label := NormalizeDomain(name)
	switch {
	case label == "":
		return label, DomainRequired
	case strings.Contains(label, "."):
		return label, DomainExtraDots
	case !validate.Label(label):
		return label, DomainInvalid
	default:
		return label, ""
	}
}

// CheckDomain validates the syntax of name and checks that it is not taken.
// It returns the full domain name and an error code, empty when available.
func (v *Validator) CheckDomain(ctx context.Context, name string) (string, string, error) {
	label, code := CheckDomainSyntax(name)
	if code != "" {
		return "", code, nil
	}
	full := FullDomain(label)
	existing, err := v.lookup.DomainByName(ctx, full)
	if err != nil {
		return "", "", fmt.Errorf("could not look up domain: %w", err)
	}
	if existing != nil {
		return full, DomainUnavailable, nil
	}

	return full, "", nil
}

// ValidateStep returns the problems of the fields collected by step. The
// request is expected to carry the values the applicant submitted.
func (v *Validator) ValidateStep(ctx context.Context, step Step, r domain.DomainRequest) (serrors.FieldErrors, error) {
	errs := serrors.FieldErrors{}

	switch step {
	case StepGenericOrgType:
		if !r.Type.Valid() {
			errs.Add("organization_type", "Select the type of organization you represent.")
		}
	case StepTribalGovernment:
		if strings.TrimSpace(r.TribeName) == "" {
			errs.Add("tribe_name", "Enter the tribe you represent.")
		}
		if !r.FederallyRecognizedTribe && !r.StateRecognizedTribe {
			errs.Add("tribe_recognition", "You can’t complete this application yet. Only tribes recognized "+
				"by the U.S. federal government or by a U.S. state government are eligible for .gov domains.")
		}
	case StepOrganizationFederal:
		if !r.FederalType.Valid() {
			errs.Add("federal_type", "Select the part of the federal government your organization is in.")
		}
	case StepOrganizationElection:
		if r.IsElectionBoard == nil {
			errs.Add("is_election_board", "Select “Yes” if you represent an election office. Select “No” if you don’t.")
		}
	case StepOrganizationContact:
		v.organizationContact(r, errs)
	case StepAboutYourOrganization:
		requireText(errs, "about_your_organization", r.AboutYourOrganization, maxTextLength,
			"Enter more information about your organization.")
	case StepSeniorOfficial:
		if r.SeniorOfficial == nil {
			errs.Add("senior_official", "Enter the senior official for your organization.")
		} else {
			validateContact(errs, "senior_official", *r.SeniorOfficial, false)
		}
	case StepCurrentSites:
		for i, site := range r.CurrentWebsites {
			if strings.TrimSpace(site) != "" && !validate.Website(site) {
				errs.Add(fmt.Sprintf("current_websites.%d", i), "Enter your organization’s current website in "+
					"the required format, like example.com.")
			}
		}
	case StepDotgovDomain:
		if err := v.dotgovDomain(ctx, r, errs); err != nil {
			return nil, err
		}
	case StepPurpose:
		requireText(errs, "purpose", r.Purpose, maxTextLength, "Describe how you’ll use the .gov domain you’re requesting.")
	case StepOtherContacts:
		v.otherContacts(r, errs)
	case StepAdditionalDetails:
		additionalDetails(r, errs)
	case StepRequirements:
		if !r.IsPolicyAcknowledged {
			errs.Add("is_policy_acknowledged", "Check the box if you read and agree to the requirements for "+
				"operating a .gov domain.")
		}
	case StepReview:
	default:
		return nil, serrors.With(serrors.ErrNotFound, "unknown step %q", step)
	}

	return errs, nil
}

// ValidateAll validates all visible steps but the review step and merges their errors.
func (v *Validator) ValidateAll(ctx context.Context, r domain.DomainRequest) (serrors.FieldErrors, error) {
	all := serrors.FieldErrors{}
	for _, step := range VisibleSteps(r) {
		errs, err := v.ValidateStep(ctx, step, r)
		if err != nil {
			return nil, err
		}
		all.Merge(errs)
	}

	return all, nil
}

func (v *Validator) organizationContact(r domain.DomainRequest, errs serrors.FieldErrors) {
	if r.Type == domain.OrganizationTypeFederal && strings.TrimSpace(r.FederalAgency) == "" {
		errs.Add("federal_agency", "Select the federal agency your organization is in.")
	}
	if strings.TrimSpace(r.OrganizationName) == "" {
		errs.Add("organization_name", "Enter the name of your organization.")
	}
	if strings.TrimSpace(r.AddressLine1) == "" {
		errs.Add("address_line1", "Enter the street address of your organization.")
	}
	if strings.TrimSpace(r.City) == "" {
		errs.Add("city", "Enter the city where your organization is located.")
	}
	if _, ok := domain.StatesAndTerritories[r.StateTerritory]; !ok {
		errs.Add("state_territory", "Select the state, territory, or military post where your organization is located.")
	}
	if !validate.Zipcode(r.Zipcode) {
		errs.Add("zipcode", "Enter a 5-digit or 9-digit zip code, like 12345 or 12345-6789.")
	}
}

func (v *Validator) dotgovDomain(ctx context.Context, r domain.DomainRequest, errs serrors.FieldErrors) error {
	requested, code, err := v.CheckDomain(ctx, r.RequestedDomain)
	if err != nil {
		return err
	}
	if code != "" {
		errs.Add("requested_domain", DomainMessage(code))
	}

	if len(r.AlternativeDomains) > v.limits.MaxAlternativeDomains {
		errs.Add("alternative_domains", fmt.Sprintf("You can list up to %d alternative domains.",
			v.limits.MaxAlternativeDomains))

		return nil
	}
	seen := map[string]bool{requested: true}
	for i, alt := range r.AlternativeDomains {
		if strings.TrimSpace(alt) == "" {
			continue
		}
		field := fmt.Sprintf("alternative_domains.%d", i)
		full, code, err := v.CheckDomain(ctx, alt)
		if err != nil {
			return err
		}
		switch {
		case code != "":
			errs.Add(field, DomainMessage(code))
		case seen[full]:
			errs.Add(field, "You already entered this domain.")
		}
		seen[full] = true
	}

	return nil
}

func (v *Validator) otherContacts(r domain.DomainRequest, errs serrors.FieldErrors) {
	if r.HasOtherContacts == nil {
		errs.Add("has_other_contacts", "Select “Yes” if you can add another employee. Select “No” if you can’t.")

		return
	}
	if !*r.HasOtherContacts {
		requireText(errs, "no_other_contacts_rationale", r.NoOtherContactsRationale, maxRationaleLength,
			"Provide a reason for not listing other employees.")

		return
	}
	if len(r.OtherContacts) == 0 {
		errs.Add("other_contacts", "Enter at least one other employee from your organization.")
	}
	if len(r.OtherContacts) > v.limits.MaxOtherContacts {
		errs.Add("other_contacts", fmt.Sprintf("You can list up to %d other employees.", v.limits.MaxOtherContacts))
	}
	for i, c := range r.OtherContacts {
		validateContact(errs, fmt.Sprintf("other_contacts.%d", i), c, true)
	}
}

func additionalDetails(r domain.DomainRequest, errs serrors.FieldErrors) {
	switch {
	case r.HasCISARepresentative == nil:
		errs.Add("has_cisa_representative", "Select “Yes” or “No” to tell us if you are working with a CISA regional representative.")
	case *r.HasCISARepresentative && !validate.Email(r.CISARepresentativeEmail):
		errs.Add("cisa_representative_email", "Enter the email address of your CISA regional representative.")
	}
	switch {
	case r.HasAnythingElse == nil:
		errs.Add("has_anything_else", "Select “Yes” or “No” to tell us if you have anything else to share.")
	case *r.HasAnythingElse:
		requireText(errs, "anything_else", r.AnythingElse, maxTextLength, "Provide additional details you’d like us to know.")
	}
}

func validateContact(errs serrors.FieldErrors, prefix string, c domain.Contact, needPhone bool) {
	if strings.TrimSpace(c.FirstName) == "" {
		errs.Add(prefix+".first_name", "Enter the first name / given name.")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs.Add(prefix+".last_name", "Enter the last name / family name.")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs.Add(prefix+".title", "Enter the title or role in your organization.")
	}
	if !validate.Email(c.Email) {
		errs.Add(prefix+".email", "Enter an email address in the required format, like name@example.com.")
	}
	if needPhone && !validate.Phone(c.Phone) {
		errs.Add(prefix+".phone", "Enter a phone number.")
	}
}

func requireText(errs serrors.FieldErrors, field, value string, maxLen int, msg string) {
	switch {
	case strings.TrimSpace(value) == "":
		errs.Add(field, msg)
	case utf8.RuneCountInString(value) > maxLen:
		errs.Add(field, fmt.Sprintf("Response must be less than %d characters.", maxLen))
	}
}
