// Package services defines shared utilities consumed by the render pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and cue
//     indexes for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (fatal input, missing speech capability, transient provider
//     errors) with errors.Is.
//
// Use these helpers when wiring new pipeline stages so error handling and
// observability stay uniform across the run.
package services
