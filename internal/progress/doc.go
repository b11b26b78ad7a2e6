// Package progress batches scroll engine telemetry off the dispatch path. A Hub
// satisfies storyteller.Emitter, queues events without blocking the engine and
// fans batches out to pluggable sinks such as structured logs or Prometheus.
package progress
