package view

import (
	"strings"

	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// ProspectFilter is the prospect table's query state. Status, niche and page
// go to the server; Search is applied to the fetched page only.
type ProspectFilter struct {
	Search  string
	Status  types.ProspectStatus
	Niche   string
	Page    int
	PerPage int
}

// NewProspectFilter returns the initial filter: first page, no filters.
func NewProspectFilter() ProspectFilter {
	return ProspectFilter{Page: 1, PerPage: backend.DefaultPerPage}
}

// Query returns the server-side part of the filter.
func (f ProspectFilter) Query() backend.ProspectQuery {
	f = f.normalized()
	return backend.ProspectQuery{
		Page:    f.Page,
		PerPage: f.PerPage,
		Status:  f.Status,
		Niche:   f.Niche,
	}
}

// WithStatus changes the status filter and returns to the first page.
func (f ProspectFilter) WithStatus(status types.ProspectStatus) ProspectFilter {
	if f.Status != status {
		f.Page = 1
	}
	f.Status = status
	return f.normalized()
}

// WithNiche changes the niche filter and returns to the first page.
func (f ProspectFilter) WithNiche(niche string) ProspectFilter {
	if f.Niche != niche {
		f.Page = 1
	}
	f.Niche = niche
	return f.normalized()
}

// WithSearch changes the client-side search term.
func (f ProspectFilter) WithSearch(term string) ProspectFilter {
	f.Search = term
	return f.normalized()
}

// Next advances one page, clamped to totalPages.
func (f ProspectFilter) Next(totalPages int) ProspectFilter {
	f = f.normalized()
	if totalPages < 1 {
		totalPages = 1
	}
	if f.Page < totalPages {
		f.Page++
	} else {
		f.Page = totalPages
	}
	return f
}

// Prev goes back one page, never below the first.
func (f ProspectFilter) Prev() ProspectFilter {
	f = f.normalized()
	if f.Page > 1 {
		f.Page--
	}
	return f
}

// Apply keeps prospects whose username or full name contains the search term,
// ignoring case. An empty term keeps everything.
func (f ProspectFilter) Apply(prospects []types.Prospect) []types.Prospect {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return prospects
	}

	out := make([]types.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if strings.Contains(strings.ToLower(p.Username), term) ||
			strings.Contains(strings.ToLower(p.FullName), term) {
			out = append(out, p)
		}
	}
	return out
}

func (f ProspectFilter) normalized() ProspectFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = backend.DefaultPerPage
	}
	return f
}
