// Package timeline converts logical input lines into a millisecond timeline
// of cues.
//
// The draft pass is driven by measured utterance durations: each primary cue
// spans its repeated speech plus the pauses between repeats, followed by the
// translation gap, the optional secondary cue and the inter-pair pause. The
// draft can then be overridden by an external timing source and snapped to
// a fixed grid. Cues are plain values; nothing here is persisted.
package timeline
