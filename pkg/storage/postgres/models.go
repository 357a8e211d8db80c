package postgres

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"registrar/pkg/domain"

	"github.com/google/uuid"
)

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}

	return sql.NullBool{Bool: *b, Valid: true}
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool

	return &v
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

// jsonb is a JSONB column value. An empty value is stored as NULL.
type jsonb []byte

func (j jsonb) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}

	return string(j), nil
}

func (j *jsonb) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = jsonb(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}

	return nil
}

func marshalJSON(v any) (jsonb, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal json column: %w", err)
	}

	return b, nil
}

// unmarshalJSON treats NULL and empty columns as the zero value.
func unmarshalJSON(b jsonb, v any) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal json column: %w", err)
	}

	return nil
}

type PgUser struct {
	ID        uuid.UUID    `db:"id"`
	Email     string       `db:"email"`
	FirstName string       `db:"first_name"`
	LastName  string       `db:"last_name"`
	Title     string       `db:"title"`
	Phone     string       `db:"phone"`
	Status    string       `db:"status"`
	IsStaff   bool         `db:"is_staff"`
	LastLogin sql.NullTime `db:"last_login"`
	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:        domain.UserID(p.ID),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Title:     p.Title,
		Phone:     p.Phone,
		Status:    domain.UserStatus(p.Status),
		IsStaff:   p.IsStaff,
		LastLogin: p.LastLogin.Time,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgUser) FromDomain(u domain.User) {
	*p = PgUser{
		ID:        newID(uuid.UUID(u.ID)),
		Email:     domain.NormalizeEmail(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Title:     u.Title,
		Phone:     u.Phone,
		Status:    string(u.Status),
		IsStaff:   u.IsStaff,
		LastLogin: nullTime(u.LastLogin),
	}
}

type PgContact struct {
	ID         uuid.UUID    `db:"id"`
	FirstName  string       `db:"first_name"`
	MiddleName string       `db:"middle_name"`
	LastName   string       `db:"last_name"`
	Title      string       `db:"title"`
	Email      string       `db:"email"`
	Phone      string       `db:"phone"`
	CreatedAt  time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt  sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgContact) ToDomain() *domain.Contact {
	return &domain.Contact{
		ID:         domain.ContactID(p.ID),
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		Title:      p.Title,
		Email:      p.Email,
		Phone:      p.Phone,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt.Time,
	}
}

func (p *PgContact) FromDomain(c domain.Contact) {
	*p = PgContact{
		ID:         newID(uuid.UUID(c.ID)),
		FirstName:  c.FirstName,
		MiddleName: c.MiddleName,
		LastName:   c.LastName,
		Title:      c.Title,
		Email:      c.Email,
		Phone:      c.Phone,
	}
}

// PgOrganization holds the organization columns shared by domain requests and
// domain information. goqu flattens it into the embedding struct.
type PgOrganization struct {
	OrganizationType         string       `db:"organization_type"`
	FederalType              string       `db:"federal_type"`
	FederalAgency            string       `db:"federal_agency"`
	TribeName                string       `db:"tribe_name"`
	FederallyRecognizedTribe bool         `db:"federally_recognized_tribe"`
	StateRecognizedTribe     bool         `db:"state_recognized_tribe"`
	IsElectionBoard          sql.NullBool `db:"is_election_board"`
	OrganizationName         string       `db:"organization_name"`
	AddressLine1             string       `db:"address_line1"`
	AddressLine2             string       `db:"address_line2"`
	City                     string       `db:"city"`
	StateTerritory           string       `db:"state_territory"`
	Zipcode                  string       `db:"zipcode"`
	Urbanization             string       `db:"urbanization"`
	AboutYourOrganization    string       `db:"about_your_organization"`
}

func (p PgOrganization) toDomain() domain.Organization {
	return domain.Organization{
		Type:                     domain.OrganizationType(p.OrganizationType),
		FederalType:              domain.FederalType(p.FederalType),
		FederalAgency:            p.FederalAgency,
		TribeName:                p.TribeName,
		FederallyRecognizedTribe: p.FederallyRecognizedTribe,
		StateRecognizedTribe:     p.StateRecognizedTribe,
		IsElectionBoard:          boolPtr(p.IsElectionBoard),
		OrganizationName:         p.OrganizationName,
		AddressLine1:             p.AddressLine1,
		AddressLine2:             p.AddressLine2,
		City:                     p.City,
		StateTerritory:           p.StateTerritory,
		Zipcode:                  p.Zipcode,
		Urbanization:             p.Urbanization,
		AboutYourOrganization:    p.AboutYourOrganization,
	}
}

func pgOrganization(o domain.Organization) PgOrganization {
	return PgOrganization{
		OrganizationType:         string(o.Type),
		FederalType:              string(o.FederalType),
		FederalAgency:            o.FederalAgency,
		TribeName:                o.TribeName,
		FederallyRecognizedTribe: o.FederallyRecognizedTribe,
		StateRecognizedTribe:     o.StateRecognizedTribe,
		IsElectionBoard:          nullBool(o.IsElectionBoard),
		OrganizationName:         o.OrganizationName,
		AddressLine1:             o.AddressLine1,
		AddressLine2:             o.AddressLine2,
		City:                     o.City,
		StateTerritory:           o.StateTerritory,
		Zipcode:                  o.Zipcode,
		Urbanization:             o.Urbanization,
		AboutYourOrganization:    o.AboutYourOrganization,
	}
}

type PgDomain struct {
	ID                   uuid.UUID    `db:"id"`
	Name                 string       `db:"name"`
	State                string       `db:"state"`
	ExpirationDate       sql.NullTime `db:"expiration_date"`
	FirstReady           sql.NullTime `db:"first_ready"`
	DeletedAt            sql.NullTime `db:"deleted_at"`
	SecurityContactEmail string       `db:"security_contact_email"`
	Nameservers          jsonb        `db:"nameservers"`
	DSData               jsonb        `db:"ds_data"`
	CreatedAt            time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt            sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgDomain) ToDomain() (*domain.Domain, error) {
	d := &domain.Domain{
		ID:                   domain.DomainID(p.ID),
		Name:                 p.Name,
		State:                domain.DomainState(p.State),
		ExpirationDate:       p.ExpirationDate.Time,
		FirstReady:           p.FirstReady.Time,
		DeletedAt:            p.DeletedAt.Time,
		SecurityContactEmail: p.SecurityContactEmail,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt.Time,
	}
	if err := unmarshalJSON(p.Nameservers, &d.Nameservers); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(p.DSData, &d.DSData); err != nil {
		return nil, err
	}

	return d, nil
}

func (p *PgDomain) FromDomain(d domain.Domain) error {
	nameservers := d.Nameservers
	if nameservers == nil {
		nameservers = []domain.Nameserver{}
	}
	ns, err := marshalJSON(nameservers)
	if err != nil {
		return err
	}
	dsData := d.DSData
	if dsData == nil {
		dsData = []domain.DSData{}
	}
	ds, err := marshalJSON(dsData)
	if err != nil {
		return err
	}

	*p = PgDomain{
		ID:                   newID(uuid.UUID(d.ID)),
		Name:                 d.Name,
		State:                string(d.State),
		ExpirationDate:       nullTime(d.ExpirationDate),
		FirstReady:           nullTime(d.FirstReady),
		DeletedAt:            nullTime(d.DeletedAt),
		SecurityContactEmail: d.SecurityContactEmail,
		Nameservers:          ns,
		DSData:               ds,
	}

	return nil
}

// PgDomainRow is a domains row joined with the suborganization name of its information record.
type PgDomainRow struct {
	PgDomain
	SubOrganizationName sql.NullString `db:"sub_organization_name"`
}

// PgReportDomain is a domain joined with the organization columns reports use.
type PgReportDomain struct {
	PgDomain
	OrganizationType string `db:"organization_type"`
	FederalType      string `db:"federal_type"`
	FederalAgency    string `db:"federal_agency"`
	OrganizationName string `db:"organization_name"`
	City             string `db:"city"`
	StateTerritory   string `db:"state_territory"`
}

func (p *PgReportDomain) organization() domain.Organization {
	return domain.Organization{
		Type:             domain.OrganizationType(p.OrganizationType),
		FederalType:      domain.FederalType(p.FederalType),
		FederalAgency:    p.FederalAgency,
		OrganizationName: p.OrganizationName,
		City:             p.City,
		StateTerritory:   p.StateTerritory,
	}
}

type PgDomainInformation struct {
	ID                uuid.UUID     `db:"id"`
	DomainID          uuid.UUID     `db:"domain_id"`
	CreatorID         uuid.NullUUID `db:"creator_id"`
	DomainRequestID   uuid.NullUUID `db:"domain_request_id"`
	PortfolioID       uuid.NullUUID `db:"portfolio_id"`
	SubOrganizationID uuid.NullUUID `db:"sub_organization_id"`
	SeniorOfficialID  uuid.NullUUID `db:"senior_official_id"`
	PgOrganization
	Purpose      string       `db:"purpose"`
	AnythingElse string       `db:"anything_else"`
	CreatedAt    time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt    sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgDomainInformation) ToDomain() *domain.DomainInformation {
	return &domain.DomainInformation{
		ID:                domain.DomainInformationID(p.ID),
		DomainID:          domain.DomainID(p.DomainID),
		CreatorID:         domain.UserID(p.CreatorID.UUID),
		DomainRequestID:   domain.DomainRequestID(p.DomainRequestID.UUID),
		PortfolioID:       domain.PortfolioID(p.PortfolioID.UUID),
		SubOrganizationID: domain.SuborganizationID(p.SubOrganizationID.UUID),
		SeniorOfficialID:  domain.ContactID(p.SeniorOfficialID.UUID),
		Organization:      p.toDomain(),
		Purpose:           p.Purpose,
		AnythingElse:      p.AnythingElse,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt.Time,
	}
}

func (p *PgDomainInformation) FromDomain(info domain.DomainInformation) {
	*p = PgDomainInformation{
		ID:                newID(uuid.UUID(info.ID)),
		DomainID:          uuid.UUID(info.DomainID),
		CreatorID:         nullUUID(uuid.UUID(info.CreatorID)),
		DomainRequestID:   nullUUID(uuid.UUID(info.DomainRequestID)),
		PortfolioID:       nullUUID(uuid.UUID(info.PortfolioID)),
		SubOrganizationID: nullUUID(uuid.UUID(info.SubOrganizationID)),
		SeniorOfficialID:  nullUUID(uuid.UUID(info.SeniorOfficialID)),
		PgOrganization:    pgOrganization(info.Organization),
		Purpose:           info.Purpose,
		AnythingElse:      info.AnythingElse,
	}
}

type PgDomainRequest struct {
	ID        uuid.UUID `db:"id"`
	CreatorID uuid.UUID `db:"creator_id"`
	Status    string    `db:"status"`
	PgOrganization

	RequestedDomain    string `db:"requested_domain"`
	AlternativeDomains jsonb  `db:"alternative_domains"`
	CurrentWebsites    jsonb  `db:"current_websites"`

	SeniorOfficial           jsonb        `db:"senior_official"`
	HasOtherContacts         sql.NullBool `db:"has_other_contacts"`
	OtherContacts            jsonb        `db:"other_contacts"`
	NoOtherContactsRationale string       `db:"no_other_contacts_rationale"`

	Purpose                 string       `db:"purpose"`
	HasCISARepresentative   sql.NullBool `db:"has_cisa_representative"`
	CISARepresentativeEmail string       `db:"cisa_representative_email"`
	HasAnythingElse         sql.NullBool `db:"has_anything_else"`
	AnythingElse            string       `db:"anything_else"`
	IsPolicyAcknowledged    bool         `db:"is_policy_acknowledged"`

	PortfolioID       uuid.NullUUID `db:"portfolio_id"`
	SubOrganizationID uuid.NullUUID `db:"sub_organization_id"`

	FirstSubmittedDate sql.NullTime  `db:"first_submitted_date"`
	LastSubmittedDate  sql.NullTime  `db:"last_submitted_date"`
	LastStatusUpdate   sql.NullTime  `db:"last_status_update"`
	RejectionReason    string        `db:"rejection_reason"`
	ActionNeededReason string        `db:"action_needed_reason"`
	ApprovedDomainID   uuid.NullUUID `db:"approved_domain_id"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgDomainRequest) ToDomain() (*domain.DomainRequest, error) {
	r := &domain.DomainRequest{
		ID:                       domain.DomainRequestID(p.ID),
		CreatorID:                domain.UserID(p.CreatorID),
		Status:                   domain.DomainRequestStatus(p.Status),
		Organization:             p.toDomain(),
		RequestedDomain:          p.RequestedDomain,
		HasOtherContacts:         boolPtr(p.HasOtherContacts),
		NoOtherContactsRationale: p.NoOtherContactsRationale,
		Purpose:                  p.Purpose,
		HasCISARepresentative:    boolPtr(p.HasCISARepresentative),
		CISARepresentativeEmail:  p.CISARepresentativeEmail,
		HasAnythingElse:          boolPtr(p.HasAnythingElse),
		AnythingElse:             p.AnythingElse,
		IsPolicyAcknowledged:     p.IsPolicyAcknowledged,
		PortfolioID:              domain.PortfolioID(p.PortfolioID.UUID),
		SubOrganizationID:        domain.SuborganizationID(p.SubOrganizationID.UUID),
		FirstSubmittedDate:       p.FirstSubmittedDate.Time,
		LastSubmittedDate:        p.LastSubmittedDate.Time,
		LastStatusUpdate:         p.LastStatusUpdate.Time,
		RejectionReason:          p.RejectionReason,
		ActionNeededReason:       p.ActionNeededReason,
		ApprovedDomainID:         domain.DomainID(p.ApprovedDomainID.UUID),
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt.Time,
	}
	if err := unmarshalJSON(p.AlternativeDomains, &r.AlternativeDomains); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(p.CurrentWebsites, &r.CurrentWebsites); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(p.SeniorOfficial, &r.SeniorOfficial); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(p.OtherContacts, &r.OtherContacts); err != nil {
		return nil, err
	}

	return r, nil
}

func (p *PgDomainRequest) FromDomain(r domain.DomainRequest) error {
	alternatives := r.AlternativeDomains
	if alternatives == nil {
		alternatives = []string{}
	}
	websites := r.CurrentWebsites
	if websites == nil {
		websites = []string{}
	}
	others := r.OtherContacts
	if others == nil {
		others = []domain.Contact{}
	}

	altJSON, err := marshalJSON(alternatives)
	if err != nil {
		return err
	}
	sitesJSON, err := marshalJSON(websites)
	if err != nil {
		return err
	}
	othersJSON, err := marshalJSON(others)
	if err != nil {
		return err
	}
	var officialJSON jsonb
	if r.SeniorOfficial != nil {
		if officialJSON, err = marshalJSON(r.SeniorOfficial); err != nil {
			return err
		}
	}

	*p = PgDomainRequest{
		ID:                       newID(uuid.UUID(r.ID)),
		CreatorID:                uuid.UUID(r.CreatorID),
		Status:                   string(r.Status),
		PgOrganization:           pgOrganization(r.Organization),
		RequestedDomain:          r.RequestedDomain,
		AlternativeDomains:       altJSON,
		CurrentWebsites:          sitesJSON,
		SeniorOfficial:           officialJSON,
		HasOtherContacts:         nullBool(r.HasOtherContacts),
		OtherContacts:            othersJSON,
		NoOtherContactsRationale: r.NoOtherContactsRationale,
		Purpose:                  r.Purpose,
		HasCISARepresentative:    nullBool(r.HasCISARepresentative),
		CISARepresentativeEmail:  r.CISARepresentativeEmail,
		HasAnythingElse:          nullBool(r.HasAnythingElse),
		AnythingElse:             r.AnythingElse,
		IsPolicyAcknowledged:     r.IsPolicyAcknowledged,
		PortfolioID:              nullUUID(uuid.UUID(r.PortfolioID)),
		SubOrganizationID:        nullUUID(uuid.UUID(r.SubOrganizationID)),
		FirstSubmittedDate:       nullTime(r.FirstSubmittedDate),
		LastSubmittedDate:        nullTime(r.LastSubmittedDate),
		LastStatusUpdate:         nullTime(r.LastStatusUpdate),
		RejectionReason:          r.RejectionReason,
		ActionNeededReason:       r.ActionNeededReason,
		ApprovedDomainID:         nullUUID(uuid.UUID(r.ApprovedDomainID)),
	}

	return nil
}

// PgDomainRequestRow is a domain_requests row joined with the creator email.
type PgDomainRequestRow struct {
	PgDomainRequest
	CreatorEmail sql.NullString `db:"creator_email"`
}

type PgDomainInvitation struct {
	ID        uuid.UUID    `db:"id"`
	Email     string       `db:"email"`
	DomainID  uuid.UUID    `db:"domain_id"`
	Status    string       `db:"status"`
	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgDomainInvitation) ToDomain() domain.DomainInvitation {
	return domain.DomainInvitation{
		ID:        domain.InvitationID(p.ID),
		Email:     p.Email,
		DomainID:  domain.DomainID(p.DomainID),
		Status:    domain.InvitationStatus(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgDomainInvitation) FromDomain(inv domain.DomainInvitation) {
	status := inv.Status
	if status == "" {
		status = domain.InvitationStatusInvited
	}
	*p = PgDomainInvitation{
		ID:       newID(uuid.UUID(inv.ID)),
		Email:    domain.NormalizeEmail(inv.Email),
		DomainID: uuid.UUID(inv.DomainID),
		Status:   string(status),
	}
}

type PgUserDomainRole struct {
	UserID    uuid.UUID `db:"user_id"`
	DomainID  uuid.UUID `db:"domain_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

type PgPortfolio struct {
	ID               uuid.UUID     `db:"id"`
	CreatorID        uuid.NullUUID `db:"creator_id"`
	OrganizationName string        `db:"organization_name"`
	OrganizationType string        `db:"organization_type"`
	FederalAgency    string        `db:"federal_agency"`
	AddressLine1     string        `db:"address_line1"`
	AddressLine2     string        `db:"address_line2"`
	City             string        `db:"city"`
	StateTerritory   string        `db:"state_territory"`
	Zipcode          string        `db:"zipcode"`
	SeniorOfficial   jsonb         `db:"senior_official"`
	CreatedAt        time.Time     `db:"created_at" goqu:"skipinsert"`
	UpdatedAt        sql.NullTime  `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgPortfolio) ToDomain() (*domain.Portfolio, error) {
	out := &domain.Portfolio{
		ID:               domain.PortfolioID(p.ID),
		CreatorID:        domain.UserID(p.CreatorID.UUID),
		OrganizationName: p.OrganizationName,
		OrganizationType: domain.OrganizationType(p.OrganizationType),
		FederalAgency:    p.FederalAgency,
		AddressLine1:     p.AddressLine1,
		AddressLine2:     p.AddressLine2,
		City:             p.City,
		StateTerritory:   p.StateTerritory,
		Zipcode:          p.Zipcode,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt.Time,
	}
	if err := unmarshalJSON(p.SeniorOfficial, &out.SeniorOfficial); err != nil {
		return nil, err
	}

	return out, nil
}

func (p *PgPortfolio) FromDomain(in domain.Portfolio) error {
	var official jsonb
	if in.SeniorOfficial != nil {
		var err error
		if official, err = marshalJSON(in.SeniorOfficial); err != nil {
			return err
		}
	}
	*p = PgPortfolio{
		ID:               newID(uuid.UUID(in.ID)),
		CreatorID:        nullUUID(uuid.UUID(in.CreatorID)),
		OrganizationName: in.OrganizationName,
		OrganizationType: string(in.OrganizationType),
		FederalAgency:    in.FederalAgency,
		AddressLine1:     in.AddressLine1,
		AddressLine2:     in.AddressLine2,
		City:             in.City,
		StateTerritory:   in.StateTerritory,
		Zipcode:          in.Zipcode,
		SeniorOfficial:   official,
	}

	return nil
}

type PgSuborganization struct {
	ID          uuid.UUID `db:"id"`
	PortfolioID uuid.UUID `db:"portfolio_id"`
	Name        string    `db:"name"`
	CreatedAt   time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgSuborganization) ToDomain() domain.Suborganization {
	return domain.Suborganization{
		ID:          domain.SuborganizationID(p.ID),
		PortfolioID: domain.PortfolioID(p.PortfolioID),
		Name:        p.Name,
		CreatedAt:   p.CreatedAt,
	}
}

type PgPortfolioPermission struct {
	UserID                uuid.UUID `db:"user_id"`
	PortfolioID           uuid.UUID `db:"portfolio_id"`
	Roles                 jsonb     `db:"roles"`
	AdditionalPermissions jsonb     `db:"additional_permissions"`
	CreatedAt             time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgPortfolioPermission) ToDomain() (domain.UserPortfolioPermission, error) {
	out := domain.UserPortfolioPermission{
		UserID:      domain.UserID(p.UserID),
		PortfolioID: domain.PortfolioID(p.PortfolioID),
		CreatedAt:   p.CreatedAt,
	}
	if err := unmarshalJSON(p.Roles, &out.Roles); err != nil {
		return out, err
	}
	if err := unmarshalJSON(p.AdditionalPermissions, &out.AdditionalPermissions); err != nil {
		return out, err
	}

	return out, nil
}

func rolesJSON(roles []domain.PortfolioRole, perms []domain.PortfolioPermission) (jsonb, jsonb, error) {
	if roles == nil {
		roles = []domain.PortfolioRole{}
	}
	if perms == nil {
		perms = []domain.PortfolioPermission{}
	}
	r, err := marshalJSON(roles)
	if err != nil {
		return nil, nil, err
	}
	p, err := marshalJSON(perms)
	if err != nil {
		return nil, nil, err
	}

	return r, p, nil
}

type PgPortfolioInvitation struct {
	ID                    uuid.UUID `db:"id"`
	Email                 string    `db:"email"`
	PortfolioID           uuid.UUID `db:"portfolio_id"`
	Roles                 jsonb     `db:"roles"`
	AdditionalPermissions jsonb     `db:"additional_permissions"`
	Status                string    `db:"status"`
	CreatedAt             time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgPortfolioInvitation) ToDomain() (domain.PortfolioInvitation, error) {
	out := domain.PortfolioInvitation{
		ID:          domain.InvitationID(p.ID),
		Email:       p.Email,
		PortfolioID: domain.PortfolioID(p.PortfolioID),
		Status:      domain.InvitationStatus(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if err := unmarshalJSON(p.Roles, &out.Roles); err != nil {
		return out, err
	}
	if err := unmarshalJSON(p.AdditionalPermissions, &out.AdditionalPermissions); err != nil {
		return out, err
	}

	return out, nil
}

type PgTransitionDomain struct {
	ID                uuid.UUID    `db:"id"`
	Username          string       `db:"username"`
	DomainName        string       `db:"domain_name"`
	Status            string       `db:"status"`
	EmailSent         bool         `db:"email_sent"`
	Processed         bool         `db:"processed"`
	OrganizationType  string       `db:"organization_type"`
	OrganizationName  string       `db:"organization_name"`
	FederalType       string       `db:"federal_type"`
	FederalAgency     string       `db:"federal_agency"`
	EPPCreationDate   sql.NullTime `db:"epp_creation_date"`
	EPPExpirationDate sql.NullTime `db:"epp_expiration_date"`
	FirstName         string       `db:"first_name"`
	MiddleName        string       `db:"middle_name"`
	LastName          string       `db:"last_name"`
	Title             string       `db:"title"`
	Email             string       `db:"email"`
	Phone             string       `db:"phone"`
	AddressLine       string       `db:"address_line"`
	City              string       `db:"city"`
	StateTerritory    string       `db:"state_territory"`
	Zipcode           string       `db:"zipcode"`
	CreatedAt         time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt         sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgTransitionDomain) ToDomain() domain.TransitionDomain {
	return domain.TransitionDomain{
		ID:                domain.TransitionDomainID(p.ID),
		Username:          p.Username,
		DomainName:        p.DomainName,
		Status:            domain.TransitionDomainStatus(p.Status),
		EmailSent:         p.EmailSent,
		Processed:         p.Processed,
		OrganizationType:  p.OrganizationType,
		OrganizationName:  p.OrganizationName,
		FederalType:       p.FederalType,
		FederalAgency:     p.FederalAgency,
		EPPCreationDate:   p.EPPCreationDate.Time,
		EPPExpirationDate: p.EPPExpirationDate.Time,
		FirstName:         p.FirstName,
		MiddleName:        p.MiddleName,
		LastName:          p.LastName,
		Title:             p.Title,
		Email:             p.Email,
		Phone:             p.Phone,
		AddressLine:       p.AddressLine,
		City:              p.City,
		StateTerritory:    p.StateTerritory,
		Zipcode:           p.Zipcode,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt.Time,
	}
}

func (p *PgTransitionDomain) FromDomain(td domain.TransitionDomain) {
	*p = PgTransitionDomain{
		ID:                newID(uuid.UUID(td.ID)),
		Username:          domain.NormalizeEmail(td.Username),
		DomainName:        td.DomainName,
		Status:            string(td.Status),
		EmailSent:         td.EmailSent,
		Processed:         td.Processed,
		OrganizationType:  td.OrganizationType,
		OrganizationName:  td.OrganizationName,
		FederalType:       td.FederalType,
		FederalAgency:     td.FederalAgency,
		EPPCreationDate:   nullTime(td.EPPCreationDate),
		EPPExpirationDate: nullTime(td.EPPExpirationDate),
		FirstName:         td.FirstName,
		MiddleName:        td.MiddleName,
		LastName:          td.LastName,
		Title:             td.Title,
		Email:             td.Email,
		Phone:             td.Phone,
		AddressLine:       td.AddressLine,
		City:              td.City,
		StateTerritory:    td.StateTerritory,
		Zipcode:           td.Zipcode,
	}
}
