// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides log capture and spreadsheet
// fixtures for tests.
package shared
