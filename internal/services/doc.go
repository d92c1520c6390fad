// Package services contains [APIService], an HTTP client for a running pbin server.
//
// # Raw Requests
//
// [APIService.Get], [APIService.Post], [APIService.Put] and [APIService.Delete] return an
// [APIResponse] carrying status, headers and body. Bodies that parse as JSON are decoded into
// [APIResponse.JSONData] so the CLI can pretty-print them.
//
// # Error Handling
//
// Transport failures are returned as errors. Non-2xx responses are not; callers turn them into
// sentinel errors with [APIResponse.Err]:
//   - 400 → [shared.ErrInvalidInput]
//   - 404 → [shared.ErrPasteNotFound]
//   - 409 → [shared.ErrDuplicateID]
//   - anything else → [shared.ErrAPIRequest]
package services
