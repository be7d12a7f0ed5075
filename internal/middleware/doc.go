// Package middleware holds the HTTP middleware chain of the dashboard API:
// request IDs, structured request logs, panic recovery, rate limiting,
// timeouts, CORS, security headers and OpenTelemetry instrumentation.
package middleware
