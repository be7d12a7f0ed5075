// Package dataset loads the automation metrics spreadsheet and turns it into
// an immutable, normalized record sequence.
//
// The flow is Load (file → RawTable), Normalize (RawTable → Dataset) and
// Filter (Dataset → Dataset view). Store keeps the current snapshot for the
// long-running service and swaps it whole on reload.
package dataset
