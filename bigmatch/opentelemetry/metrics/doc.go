// Package metrics provides a small OpenTelemetry counter factory used to
// record assertion failures and matcher dispatch paths.
package metrics
