// Package faretrack finds cheap round trips from a fare search site.
// It drives a headless browser through the site's "anywhere" explore view,
// harvests destination and price cells from the rendered results, and
// keeps the destinations that fit under a price ceiling, cheapest first.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package faretrack
