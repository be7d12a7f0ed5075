// Package indicators computes the dashboard figures from a filtered
// dataset: the KPI block, the three grouped tables and the detail table
// with derived manual and robot execution hours.
//
// Every function is a pure computation over its input and safe for
// concurrent use.
package indicators
