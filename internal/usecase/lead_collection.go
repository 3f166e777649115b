package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/anvaya-web/internal/entity"
)

// StatusFilter narrows the dashboard grid. It never affects the footer.
type StatusFilter string

const (
	FilterAll          StatusFilter = "All"
	FilterNew          StatusFilter = StatusFilter(entity.StatusNew)
	FilterContacted    StatusFilter = StatusFilter(entity.StatusContacted)
	FilterProposalSent StatusFilter = StatusFilter(entity.StatusProposalSent)
	FilterClosed       StatusFilter = StatusFilter(entity.StatusClosed)
)

// StatusFilters lists the dashboard filter options in display order.
var StatusFilters = []StatusFilter{FilterAll, FilterNew, FilterContacted, FilterProposalSent, FilterClosed}

// ParseStatusFilter maps a query value onto the filter set; anything else is All.
func ParseStatusFilter(s string) StatusFilter {
	s = strings.TrimSpace(s)
	for _, f := range StatusFilters {
		if string(f) == s {
			return f
		}
	}
	return FilterAll
}

// FooterMode selects how the dashboard footer computes its "Proposal Sent" bucket.
type FooterMode string

const (
	// FooterDerived reports Proposal Sent as total - New - Contacted - Closed,
	// so Qualified and unrecognised statuses are folded into it.
	FooterDerived FooterMode = "derived"
	// FooterExact tallies every bucket directly and surfaces Qualified and
	// Unknown on their own.
	FooterExact FooterMode = "exact"
)

func ParseFooterMode(s string) FooterMode {
	if FooterMode(strings.ToLower(strings.TrimSpace(s))) == FooterExact {
		return FooterExact
	}
	return FooterDerived
}

type StatusSummary struct {
	All          int
	New          int
	Contacted    int
	ProposalSent int
	Closed       int
	Qualified    int
	Unknown      int
}

// LeadCollection derives the dashboard grid and footer from the raw lead list.
// A nil Leads slice means "not loaded" and behaves like an empty one.
type LeadCollection struct {
	Leads  []entity.Lead
	Filter StatusFilter
}

func (c LeadCollection) FilteredLeads() []entity.Lead {
	if c.Leads == nil {
		return []entity.Lead{}
	}
	if c.Filter == FilterAll || c.Filter == "" {
		return c.Leads
	}

	out := make([]entity.Lead, 0, len(c.Leads))
	for _, lead := range c.Leads {
		if StatusFilter(lead.Status) == c.Filter {
			out = append(out, lead)
		}
	}
	return out
}

// StatusCounts tallies every distinct status in the full, unfiltered list.
func (c LeadCollection) StatusCounts() map[entity.LeadStatus]int {
	counts := make(map[entity.LeadStatus]int)
	for _, lead := range c.Leads {
		counts[lead.Status]++
	}
	return counts
}

func (c LeadCollection) Summary(mode FooterMode) StatusSummary {
	counts := c.StatusCounts()
	s := StatusSummary{
		All:       len(c.Leads),
		New:       counts[entity.StatusNew],
		Contacted: counts[entity.StatusContacted],
		Closed:    counts[entity.StatusClosed],
	}

	if mode == FooterExact {
		s.ProposalSent = counts[entity.StatusProposalSent]
		s.Qualified = counts[entity.StatusQualified]
		for status, n := range counts {
			if !status.Valid() {
				s.Unknown += n
			}
		}
		return s
	}

	s.ProposalSent = s.All - s.New - s.Contacted - s.Closed
	return s
}

// StatusClass is the colour class of a status badge on a lead card.
func StatusClass(status entity.LeadStatus) string {
	switch status {
	case entity.StatusNew:
		return "text-green-600"
	case entity.StatusContacted:
		return "text-yellow-600"
	case entity.StatusProposalSent:
		return "text-blue-600"
	case entity.StatusClosed:
		return "text-red-600"
	default:
		return "text-gray-600"
	}
}

// DashboardPage is the view-model behind "/".
type DashboardPage struct {
	Page
	repo       LeadRepository
	leads      []entity.Lead
	Filter     StatusFilter
	FooterMode FooterMode
}

func NewDashboardPage(repo LeadRepository, filter StatusFilter, mode FooterMode) *DashboardPage {
	return &DashboardPage{
		repo:       repo,
		Filter:     filter,
		FooterMode: mode,
	}
}

// Load fetches the full lead list once.
func (d *DashboardPage) Load(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}

	err := Await(ctx, &d.Page, d.repo.ListLeads, func(leads []entity.Lead) {
		if leads == nil {
			leads = []entity.Lead{}
		}
		d.leads = leads
	})
	d.finish(err)
	return err
}

func (d *DashboardPage) Collection() LeadCollection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return LeadCollection{Leads: d.leads, Filter: d.Filter}
}

func (d *DashboardPage) Summary() StatusSummary {
	return d.Collection().Summary(d.FooterMode)
}

// ExactFooter reports whether Qualified and Unknown get their own footer entries.
func (d *DashboardPage) ExactFooter() bool {
	return d.FooterMode == FooterExact
}
