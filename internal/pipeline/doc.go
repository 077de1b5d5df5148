// Package pipeline runs one render from input lines to finished outputs.
//
// A Runner ingests the lines, synthesizes every utterance, drafts the cue
// timeline from the measured durations and then fits narration audio and
// resolves per-sentence images side by side. The outputs are a WAV (plus an
// optional MP3), SRT and ASS subtitles, and the muxed slideshow video.
//
// Speech and image work fan out over bounded errgroup pools and land in
// index-addressed slices, so cue order never depends on completion order. The
// run timeout bounds the provider phase only: whatever is still outstanding
// when it fires degrades to silence or a solid background instead of failing
// the run.
//
// NewFromConfig wires the production collaborators (artifact cache, speech
// synthesizer, image resolver, ffmpeg assembler) from a loaded configuration.
package pipeline
