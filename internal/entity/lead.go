package entity

import "time"

type LeadStatus string

const (
	StatusNew          LeadStatus = "New"
	StatusContacted    LeadStatus = "Contacted"
	StatusQualified    LeadStatus = "Qualified"
	StatusProposalSent LeadStatus = "Proposal Sent"
	StatusClosed       LeadStatus = "Closed"
)

// LeadStatuses is the closed set offered by the creation form, in pipeline order.
var LeadStatuses = []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusProposalSent, StatusClosed}

func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Display returns the status text, or "Unknown" for values outside the enum.
func (s LeadStatus) Display() string {
	if !s.Valid() {
		return UnknownDisplay
	}
	return string(s)
}

type LeadSource string

const (
	SourceWebsite       LeadSource = "Website"
	SourceReferral      LeadSource = "Referral"
	SourceColdCall      LeadSource = "Cold Call"
	SourceAdvertisement LeadSource = "Advertisement"
	SourceEmail         LeadSource = "Email"
	SourceOther         LeadSource = "Other"
)

var LeadSources = []LeadSource{SourceWebsite, SourceReferral, SourceColdCall, SourceAdvertisement, SourceEmail, SourceOther}

func (s LeadSource) Valid() bool {
	for _, known := range LeadSources {
		if s == known {
			return true
		}
	}
	return false
}

func (s LeadSource) Display() string {
	if !s.Valid() {
		return UnknownDisplay
	}
	return string(s)
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func (p Priority) Display() string {
	if !p.Valid() {
		return UnknownDisplay
	}
	return string(p)
}

// UnknownDisplay is shown for enum values the front-end does not recognise.
const UnknownDisplay = "Unknown"

// DateLayout is the wire format of calendar dates such as closedAt.
const DateLayout = "2006-01-02"

type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Source      LeadSource `json:"source"`
	SalesAgent  string     `json:"salesAgent"`
	Status      LeadStatus `json:"status"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	TimeToClose int        `json:"timeToClose"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

// NewLead is the creation payload sent to the remote API.
type NewLead struct {
	Name        string     `json:"name"`
	Source      LeadSource `json:"source"`
	SalesAgent  string     `json:"salesAgent"`
	Status      LeadStatus `json:"status"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	TimeToClose int        `json:"timeToClose"`
	ClosedAt    *string    `json:"closedAt"`
}
