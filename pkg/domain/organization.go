package domain

// OrganizationType is the generic kind of government organization requesting
// or holding a domain.
type OrganizationType string

const (
	OrganizationTypeFederal          OrganizationType = "federal"
	OrganizationTypeInterstate       OrganizationType = "interstate"
	OrganizationTypeStateOrTerritory OrganizationType = "state_or_territory"
	OrganizationTypeTribal           OrganizationType = "tribal"
	OrganizationTypeCounty           OrganizationType = "county"
	OrganizationTypeCity             OrganizationType = "city"
	OrganizationTypeSpecialDistrict  OrganizationType = "special_district"
	OrganizationTypeSchoolDistrict   OrganizationType = "school_district"
)

// OrganizationTypes lists all organization types in display order.
var OrganizationTypes = []OrganizationType{ //nolint: gochecknoglobals
	OrganizationTypeFederal,
	OrganizationTypeInterstate,
	OrganizationTypeStateOrTerritory,
	OrganizationTypeTribal,
	OrganizationTypeCounty,
	OrganizationTypeCity,
	OrganizationTypeSpecialDistrict,
	OrganizationTypeSchoolDistrict,
}

var organizationTypeLabels = map[OrganizationType]string{ //nolint: gochecknoglobals
	OrganizationTypeFederal:          "Federal",
	OrganizationTypeInterstate:       "Interstate",
	OrganizationTypeStateOrTerritory: "State or territory",
	OrganizationTypeTribal:           "Tribal",
	OrganizationTypeCounty:           "County",
	OrganizationTypeCity:             "City",
	OrganizationTypeSpecialDistrict:  "Special district",
	OrganizationTypeSchoolDistrict:   "School district",
}

// Label returns the human readable name of the organization type.
func (o OrganizationType) Label() string {
	return organizationTypeLabels[o]
}

// Valid reports whether o is a known organization type.
func (o OrganizationType) Valid() bool {
	_, ok := organizationTypeLabels[o]

	return ok
}

// HasElectionOffice reports whether organizations of this type are asked
// whether they are an election office.
func (o OrganizationType) HasElectionOffice() bool {
	switch o { //nolint: exhaustive
	case OrganizationTypeCity, OrganizationTypeCounty, OrganizationTypeSpecialDistrict,
		OrganizationTypeSchoolDistrict, OrganizationTypeTribal:
		return true
	default:
		return false
	}
}

// NeedsAboutYourOrganization reports whether organizations of this type must
// describe themselves.
func (o OrganizationType) NeedsAboutYourOrganization() bool {
	return o == OrganizationTypeSpecialDistrict || o == OrganizationTypeInterstate
}

// FederalType is the branch of the federal government.
type FederalType string

const (
	FederalTypeExecutive   FederalType = "executive"
	FederalTypeJudicial    FederalType = "judicial"
	FederalTypeLegislative FederalType = "legislative"
)

// Valid reports whether f is a known branch.
func (f FederalType) Valid() bool {
	switch f {
	case FederalTypeExecutive, FederalTypeJudicial, FederalTypeLegislative:
		return true
	default:
		return false
	}
}

// Label returns the display name of the branch.
func (f FederalType) Label() string {
	switch f {
	case FederalTypeExecutive:
		return "Executive"
	case FederalTypeJudicial:
		return "Judicial"
	case FederalTypeLegislative:
		return "Legislative"
	default:
		return ""
	}
}

// StatesAndTerritories maps the two letter postal code to its name.
var StatesAndTerritories = map[string]string{ //nolint: gochecknoglobals
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"AS": "American Samoa", "GU": "Guam", "MP": "Northern Mariana Islands",
	"PR": "Puerto Rico", "VI": "Virgin Islands", "AA": "Armed Forces Americas",
	"AE": "Armed Forces Africa, Canada, Europe, Middle East", "AP": "Armed Forces Pacific",
}

// Organization groups the fields describing the organization behind a domain
// request or an approved domain.
type Organization struct {
	Type                     OrganizationType `json:"organizationType"`
	FederalType              FederalType      `json:"federalType,omitempty"`
	FederalAgency            string           `json:"federalAgency,omitempty"`
	TribeName                string           `json:"tribeName,omitempty"`
	FederallyRecognizedTribe bool             `json:"federallyRecognizedTribe,omitempty"`
	StateRecognizedTribe     bool             `json:"stateRecognizedTribe,omitempty"`
	IsElectionBoard          *bool            `json:"isElectionBoard,omitempty"`
	OrganizationName         string           `json:"organizationName"`
	AddressLine1             string           `json:"addressLine1"`
	AddressLine2             string           `json:"addressLine2,omitempty"`
	City                     string           `json:"city"`
	StateTerritory           string           `json:"stateTerritory"`
	Zipcode                  string           `json:"zipcode"`
	Urbanization             string           `json:"urbanization,omitempty"`
	AboutYourOrganization    string           `json:"aboutYourOrganization,omitempty"`
}
