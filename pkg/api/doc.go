// Package api is the quick-search HTTP gateway.
//
// # Endpoints
//
// Exact search:
//
//	GET /search?q=<query>
//
// Resolves the query against the root index. A unique match redirects
// (302) to the target's URL; no match is a 404. Substrings never resolve.
//
// Suggestions:
//
//	GET /search/suggest?query=<query>
//
// Returns a JSON object with a "suggestions" array of {name, url} pairs.
// An object indexed under both its literal name and a distinct display
// name contributes up to two entries when both alias strings match.
//
// The query string is opaque data in both modes: it is matched as literal
// text and only ever reflected inside JSON-encoded payloads.
package api
