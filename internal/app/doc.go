// Package app wires the dashboard together: configuration, logging and
// telemetry, the dataset store, services, websocket hub, optional file
// watcher and the HTTP server.
//
// # Usage
//
//	a, err := app.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return a.Run(ctx)
//
// Run blocks until ctx is cancelled and then shuts the server down within
// Server.ShutdownTimeout.
package app
