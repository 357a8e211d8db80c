package webhandler

import (
	"net/url"
	"testing"

	"registrar/internal/wizard"
	"registrar/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestDecodeStep(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		step wizard.Step
		form url.Values
		want domain.DomainRequest
	}{
		{
			name: "organization type",
			step: wizard.StepGenericOrgType,
			form: url.Values{"organization_type": {"county"}, "purpose": {"ignored"}},
			want: domain.DomainRequest{Organization: domain.Organization{Type: domain.OrganizationTypeCounty}},
		},
		{
			name: "unanswered election question",
			step: wizard.StepOrganizationElection,
			form: url.Values{},
			want: domain.DomainRequest{},
		},
		{
			name: "election office",
			step: wizard.StepOrganizationElection,
			form: url.Values{"is_election_board": {"false"}},
			want: domain.DomainRequest{Organization: domain.Organization{IsElectionBoard: &no}},
		},
		{
			name: "senior official",
			step: wizard.StepSeniorOfficial,
			form: url.Values{"senior_official.first_name": {" Jo "}, "senior_official.email": {"jo@city.gov"}},
			want: domain.DomainRequest{SeniorOfficial: &domain.Contact{FirstName: "Jo", Email: "jo@city.gov"}},
		},
		{
			name: "indexed alternatives",
			step: wizard.StepDotgovDomain,
			form: url.Values{
				"requested_domain":      {"city"},
				"alternative_domains.0": {"town"},
				"alternative_domains.1": {""},
			},
			want: domain.DomainRequest{RequestedDomain: "city", AlternativeDomains: []string{"town", ""}},
		},
		{
			name: "repeated websites",
			step: wizard.StepCurrentSites,
			form: url.Values{"current_websites": {"city.example.com", "town.example.com"}},
			want: domain.DomainRequest{CurrentWebsites: []string{"city.example.com", "town.example.com"}},
		},
		{
			name: "other contacts skip blank rows",
			step: wizard.StepOtherContacts,
			form: url.Values{
				"has_other_contacts":        {"true"},
				"other_contacts.0.last_name": {"Clerk"},
				"other_contacts.2.email":     {"al@city.gov"},
			},
			want: domain.DomainRequest{
				HasOtherContacts: &yes,
				OtherContacts:    []domain.Contact{{LastName: "Clerk"}, {Email: "al@city.gov"}},
			},
		},
		{
			name: "requirements checkbox",
			step: wizard.StepRequirements,
			form: url.Values{"is_policy_acknowledged": {"on"}},
			want: domain.DomainRequest{IsPolicyAcknowledged: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, decodeStep(tt.step, tt.form))
		})
	}
}
