// Package domain contains the entities of the memory exercise service:
// exercise classification, session records with their telemetry, score
// breakdowns and the aggregate views derived from them. It has no
// dependencies on storage or transport.
package domain
