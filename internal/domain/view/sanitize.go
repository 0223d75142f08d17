package view

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// Sanitizer strips markup from backend free text (bios, descriptions, notes).
// Scraped profile fields are attacker-controlled, so they are reduced to plain
// text before the console hands them out.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with a strict (no markup) policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// maxSanitizePasses bounds how many layers of entity encoding are peeled.
const maxSanitizePasses = 8

// Text returns v without markup, with entities decoded for plain display.
// Decoding and stripping repeat until the text is stable, so markup hidden
// behind entities is removed too. Input that never settles is returned in
// its escaped form.
func (s *Sanitizer) Text(v string) string {
	if v == "" {
		return v
	}
	for range maxSanitizePasses {
		clean := s.policy.Sanitize(v)
		plain := html.UnescapeString(clean)
		if plain == v {
			return strings.TrimSpace(plain)
		}
		v = plain
	}
	return strings.TrimSpace(s.policy.Sanitize(v))
}

// Prospects sanitizes free-text prospect fields in place and returns the slice.
func (s *Sanitizer) Prospects(prospects []types.Prospect) []types.Prospect {
	for i := range prospects {
		p := &prospects[i]
		p.FullName = s.Text(p.FullName)
		p.Bio = s.Text(p.Bio)
		p.Notes = s.Text(p.Notes)
	}
	return prospects
}

// Campaigns sanitizes campaign descriptions in place and returns the slice.
func (s *Sanitizer) Campaigns(campaigns []types.Campaign) []types.Campaign {
	for i := range campaigns {
		campaigns[i].Description = s.Text(campaigns[i].Description)
	}
	return campaigns
}

// Accounts sanitizes account notes in place and returns the slice.
func (s *Sanitizer) Accounts(accounts []types.InstagramAccount) []types.InstagramAccount {
	for i := range accounts {
		accounts[i].Notes = s.Text(accounts[i].Notes)
	}
	return accounts
}
