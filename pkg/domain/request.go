package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainRequestID uniquely identifies a domain request.
type DomainRequestID uuid.UUID

// String returns the canonical UUID representation.
func (id DomainRequestID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id DomainRequestID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// DomainRequestStatus is the review state of a domain request.
type DomainRequestStatus string

const (
	DomainRequestStatusStarted      DomainRequestStatus = "started"
	DomainRequestStatusSubmitted    DomainRequestStatus = "submitted"
	DomainRequestStatusInReview     DomainRequestStatus = "in review"
	DomainRequestStatusActionNeeded DomainRequestStatus = "action needed"
	DomainRequestStatusApproved     DomainRequestStatus = "approved"
	DomainRequestStatusWithdrawn    DomainRequestStatus = "withdrawn"
	DomainRequestStatusRejected     DomainRequestStatus = "rejected"
	DomainRequestStatusIneligible   DomainRequestStatus = "ineligible"
)

// DomainRequestStatuses lists all statuses.
var DomainRequestStatuses = []DomainRequestStatus{ //nolint: gochecknoglobals
	DomainRequestStatusStarted,
	DomainRequestStatusSubmitted,
	DomainRequestStatusInReview,
	DomainRequestStatusActionNeeded,
	DomainRequestStatusApproved,
	DomainRequestStatusWithdrawn,
	DomainRequestStatusRejected,
	DomainRequestStatusIneligible,
}

// Valid reports whether s is a known status.
func (s DomainRequestStatus) Valid() bool {
	for _, st := range DomainRequestStatuses {
		if st == s {
			return true
		}
	}

	return false
}

// Label returns the display label of the status.
func (s DomainRequestStatus) Label() string {
	switch s {
	case DomainRequestStatusStarted:
		return "Started"
	case DomainRequestStatusSubmitted:
		return "Submitted"
	case DomainRequestStatusInReview:
		return "In review"
	case DomainRequestStatusActionNeeded:
		return "Action needed"
	case DomainRequestStatusApproved:
		return "Approved"
	case DomainRequestStatusWithdrawn:
		return "Withdrawn"
	case DomainRequestStatusRejected:
		return "Rejected"
	case DomainRequestStatusIneligible:
		return "Ineligible"
	default:
		return string(s)
	}
}

// Transition names a status change of a domain request.
type Transition string

const (
	TransitionSubmit              Transition = "submit"
	TransitionInReview            Transition = "in_review"
	TransitionActionNeeded        Transition = "action_needed"
	TransitionApprove             Transition = "approve"
	TransitionWithdraw            Transition = "withdraw"
	TransitionReject              Transition = "reject"
	TransitionRejectWithPrejudice Transition = "reject_with_prejudice"
)

type transitionRule struct {
	from []DomainRequestStatus
	to   DomainRequestStatus
}

var transitionRules = map[Transition]transitionRule{ //nolint: gochecknoglobals
	TransitionSubmit: {
		from: []DomainRequestStatus{
			DomainRequestStatusStarted, DomainRequestStatusInReview,
			DomainRequestStatusActionNeeded, DomainRequestStatusWithdrawn,
		},
		to: DomainRequestStatusSubmitted,
	},
	TransitionInReview: {
		from: []DomainRequestStatus{
			DomainRequestStatusSubmitted, DomainRequestStatusActionNeeded, DomainRequestStatusApproved,
			DomainRequestStatusRejected, DomainRequestStatusIneligible,
		},
		to: DomainRequestStatusInReview,
	},
	TransitionActionNeeded: {
		from: []DomainRequestStatus{
			DomainRequestStatusInReview, DomainRequestStatusApproved,
			DomainRequestStatusRejected, DomainRequestStatusIneligible,
		},
		to: DomainRequestStatusActionNeeded,
	},
	TransitionApprove: {
		from: []DomainRequestStatus{
			DomainRequestStatusSubmitted, DomainRequestStatusInReview,
			DomainRequestStatusActionNeeded, DomainRequestStatusRejected,
		},
		to: DomainRequestStatusApproved,
	},
	TransitionWithdraw: {
		from: []DomainRequestStatus{
			DomainRequestStatusSubmitted, DomainRequestStatusInReview, DomainRequestStatusActionNeeded,
		},
		to: DomainRequestStatusWithdrawn,
	},
	TransitionReject: {
		from: []DomainRequestStatus{
			DomainRequestStatusInReview, DomainRequestStatusActionNeeded, DomainRequestStatusApproved,
		},
		to: DomainRequestStatusRejected,
	},
	TransitionRejectWithPrejudice: {
		from: []DomainRequestStatus{
			DomainRequestStatusInReview, DomainRequestStatusActionNeeded,
			DomainRequestStatusApproved, DomainRequestStatusRejected,
		},
		to: DomainRequestStatusIneligible,
	},
}

// Target returns the status a transition leads to and whether it may be
// applied from the given status.
func (t Transition) Target(from DomainRequestStatus) (DomainRequestStatus, bool) {
	rule, ok := transitionRules[t]
	if !ok {
		return "", false
	}
	for _, s := range rule.from {
		if s == from {
			return rule.to, true
		}
	}

	return rule.to, false
}

// Valid reports whether t is a known transition.
func (t Transition) Valid() bool {
	_, ok := transitionRules[t]

	return ok
}

// DomainRequest is an applicant's in-progress or submitted request for a new
// .gov domain. Fields are filled step by step by the request wizard.
type DomainRequest struct {
	ID        DomainRequestID     `json:"id"`
	CreatorID UserID              `json:"creatorId"`
	Status    DomainRequestStatus `json:"status"`

	Organization

	RequestedDomain    string   `json:"requestedDomain"`
	AlternativeDomains []string `json:"alternativeDomains"`
	CurrentWebsites    []string `json:"currentWebsites"`

	SeniorOfficial           *Contact  `json:"seniorOfficial,omitempty"`
	HasOtherContacts         *bool     `json:"hasOtherContacts,omitempty"`
	OtherContacts            []Contact `json:"otherContacts"`
	NoOtherContactsRationale string    `json:"noOtherContactsRationale,omitempty"`

	Purpose                 string `json:"purpose,omitempty"`
	HasCISARepresentative   *bool  `json:"hasCisaRepresentative,omitempty"`
	CISARepresentativeEmail string `json:"cisaRepresentativeEmail,omitempty"`
	HasAnythingElse         *bool  `json:"hasAnythingElse,omitempty"`
	AnythingElse            string `json:"anythingElse,omitempty"`
	IsPolicyAcknowledged    bool   `json:"isPolicyAcknowledged"`

	PortfolioID       PortfolioID       `json:"portfolioId"`
	SubOrganizationID SuborganizationID `json:"subOrganizationId"`

	FirstSubmittedDate time.Time `json:"firstSubmittedDate"`
	LastSubmittedDate  time.Time `json:"lastSubmittedDate"`
	LastStatusUpdate   time.Time `json:"lastStatusUpdate"`
	RejectionReason    string    `json:"rejectionReason,omitempty"`
	ActionNeededReason string    `json:"actionNeededReason,omitempty"`
	ApprovedDomainID   DomainID  `json:"approvedDomainId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsDeletable reports whether the creator may delete the request.
func (r DomainRequest) IsDeletable() bool {
	return r.Status == DomainRequestStatusStarted || r.Status == DomainRequestStatusWithdrawn
}

// IsEditable reports whether the creator may still change the request.
func (r DomainRequest) IsEditable() bool {
	switch r.Status { //nolint: exhaustive
	case DomainRequestStatusStarted, DomainRequestStatusActionNeeded, DomainRequestStatusWithdrawn:
		return true
	default:
		return false
	}
}
