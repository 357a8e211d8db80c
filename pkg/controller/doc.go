// Package controller contains HTTP middlewares and helper handlers used by the registrar server.
//
// Provided middlewares:
//   - WithCORS: Adds CORS headers for the configured origins and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - RateLimiter.Middleware: Rejects clients exceeding their token bucket with 429.
//
// Provided helpers:
//   - WriteJSON, WriteError: Encode responses and the error envelope.
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
