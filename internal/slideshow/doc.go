// Package slideshow builds the background video for a render.
//
// Each cue owns a visual span from its start to the next cue's start; the
// last span runs to the end of the audio so trailing silence stays on the
// final image. Spans become fixed-frame-count clips (a still image scaled and
// cropped to the frame, or a solid colour), which are concatenated without
// re-encoding. Mux then burns the ASS subtitles and adds the narration.
package slideshow
