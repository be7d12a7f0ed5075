// Package http implements the JSON API handlers of the dashboard. Handlers
// parse and validate the request, call a service and render the result;
// failures are rendered as RFC 7807 problem documents by the shared
// ErrorHandler.
//
// # Selection
//
// Endpoints that work on a developer selection accept either repeated
// parameters or one comma separated list:
//
//	GET /api/dashboard?developer=Ana&developer=Bea
//	GET /api/dashboard?developers=Ana,Bea
//
// No parameter selects every developer.
package http
