// Package scoring turns the telemetry of a memory exercise session into a
// final score in [0, 100] and an auditable breakdown. All calculations
// are pure and deterministic, so a Service is safe for concurrent use.
package scoring
