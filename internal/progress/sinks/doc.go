// Package sinks implements concrete consumers of scroll engine telemetry:
// structured zap logging and Prometheus collectors. Each sink satisfies
// progress.Sink and is safe for repeated Consume/Close cycles.
package sinks
