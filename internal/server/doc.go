// Package server provides HTTP routing and middleware for the watchlist web application.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes innermost), following the standard Go pattern.
//
// The [BasicRouter] implementation registers "METHOD /path" patterns on an [http.ServeMux], so
// handlers read path wildcards with [http.Request.PathValue].
//
// # Middleware
//
//   - [RequestID] tags each request with a UUID
//   - [Logger] writes one structured log line per request
//   - [Recoverer] converts panics into 500 responses
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [HealthHandler] is the built-in example.
package server
