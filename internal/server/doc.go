// Package server provides HTTP routing, middleware, and the handlers behind pbin's local web surface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Paste API
//
// [PasteHandler] exposes the paste store as JSON:
//
//	GET    /api/pastes?q=   → list pastes, optionally filtered by title
//	POST   /api/pastes      → create a paste (id optional)
//	GET    /api/pastes/{id} → fetch one paste
//	PUT    /api/pastes/{id} → replace title and content of an existing paste
//	DELETE /api/pastes/{id} → remove a paste
//
// Errors are returned as {"error": "..."} with a status derived from the sentinel error.
//
// # Share Page
//
// [ShareHandler] serves GET /pastes/{id}, the read-only page share links point to.
// Content is rendered as escaped preformatted text; ?raw=1 returns text/plain.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
