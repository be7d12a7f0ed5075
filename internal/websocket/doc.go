// Package websocket pushes dataset reload notifications to browsers.
//
// A Hub owns the set of connected clients and runs until its context is
// cancelled. Each Client runs a read pump and a write pump; the write pump
// also keeps the connection alive with pings. Clients never send commands,
// they only listen for dataset:reloaded and dataset:error messages and
// refetch the dashboard when told to.
package websocket
