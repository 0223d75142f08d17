// Package view holds the presentation rules of the outreach dashboard.
//
// Nothing here performs I/O. The console server and the CLI both render
// through these helpers so the two surfaces agree on gating, filtering,
// badges and form parsing.
//
// Components:
//   - Gate: which top-level view a session snapshot allows
//   - ProspectFilter: server-side filters, pagination and client-side search
//   - ParseCampaignForm: comma-separated form input to a create payload
//   - Badges: status, niche and usage labels with a display tone
//   - Sanitizer: strips markup from backend free text
package view
