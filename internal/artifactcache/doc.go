// Package artifactcache stores downloaded and synthesized artifacts (speech
// audio, images) on disk under content-derived names.
//
// Each cache directory holds one subdirectory per namespace plus a SQLite
// index (index.db) recording size, source, and last use for every entry.
// Writes go to a temporary file that is hard-linked into place, so the
// first writer for a key wins and concurrent writers (in this or another
// process) read the winner's bytes. Within one process, concurrent requests
// for the same key are collapsed with singleflight.
//
// Renders hold a shared flock on the directory; prune and clear take an
// exclusive lock and fail with ErrBusy while a render is running.
package artifactcache
