// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the dataset store so that the
// indicator pipeline can be tested without a server.
//
// # Available Services
//
//	- DashboardService: runs the indicator pipeline for a developer selection
//	- HealthService: health, readiness and version information
//
// Every DashboardService call recomputes from the current snapshot. The
// snapshot itself is immutable and swapped whole on reload, so services
// hold no locks.
package services
