// Package staffscout discovers academic staff on university websites.
// It crawls a site within its root domain, recognizes staff directory pages,
// and reconstructs contact records (name, email, title, role, field) from
// heterogeneous HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package staffscout
