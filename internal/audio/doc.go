// Package audio holds narration as raw PCM and fits it onto a cue timeline.
//
// Every Segment is 48 kHz stereo signed 16-bit little-endian PCM and always a
// whole number of milliseconds long, so durations are exact integers. Fit
// builds the repeated utterance for one cue and pads or truncates it to the
// cue window; Assemble places fitted cues at their absolute start times.
// Decoding provider audio and encoding MP3 goes through ffmpeg.
package audio
