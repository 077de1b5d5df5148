// Package main hosts the lingoreel CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the structured
// logger, and hands off to the internal packages: render drives the pipeline,
// plan previews image queries, status runs preflight checks, and the config
// and cache groups cover scaffolding and artifact cache maintenance.
//
// Keep this package lean: add behaviour to the internal packages first and
// surface it here through commands or flags.
package main
