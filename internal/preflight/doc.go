// Package preflight provides readiness checks for the external binaries,
// services, and filesystem paths lingoreel depends on.
//
// The CLI "lingoreel status" command runs RunAll and renders every result;
// "lingoreel render" uses CheckSystemDeps to refuse early when a required
// binary is missing. Image provider and LLM checks issue one real request so
// a bad key shows up before a long render degrades to solid backgrounds.
package preflight
