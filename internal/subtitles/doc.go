// Package subtitles reads and writes the subtitle files that accompany a
// render.
//
// SRT is written for every run and can also be read back as an external
// timing source. ASS is written for the video burn-in step, with separate
// styles for primary lines and their translations.
package subtitles
