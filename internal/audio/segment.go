package audio

import (
	"encoding/binary"
	"math"
)

// PCM layout shared by every Segment.
const (
	SampleRate     = 48000
	Channels       = 2
	BytesPerSample = 2
	FramesPerMS    = SampleRate / 1000
	BytesPerMS     = FramesPerMS * Channels * BytesPerSample
)

// Segment is an immutable run of PCM audio.
type Segment struct {
	pcm []byte
}

// NewSegment wraps raw PCM, dropping any trailing partial millisecond.
func NewSegment(pcm []byte) Segment {
	n := len(pcm) - len(pcm)%BytesPerMS
	return Segment{pcm: pcm[:n:n]}
}

// Silence returns ms milliseconds of digital silence.
func Silence(ms int) Segment {
	if ms <= 0 {
		return Segment{}
	}
	return Segment{pcm: make([]byte, ms*BytesPerMS)}
}

// DurationMS returns the segment length in milliseconds.
func (s Segment) DurationMS() int {
	return len(s.pcm) / BytesPerMS
}

// Bytes returns the underlying PCM. Callers must not modify it.
func (s Segment) Bytes() []byte {
	return s.pcm
}

// Empty reports whether the segment holds no audio.
func (s Segment) Empty() bool {
	return len(s.pcm) == 0
}

// Concat joins segments in order.
func Concat(segs ...Segment) Segment {
	total := 0
	for _, seg := range segs {
		total += len(seg.pcm)
	}
	out := make([]byte, 0, total)
	for _, seg := range segs {
		out = append(out, seg.pcm...)
	}
	return Segment{pcm: out}
}

// Truncate keeps at most the first ms milliseconds.
func (s Segment) Truncate(ms int) Segment {
	ms = max(ms, 0)
	if ms >= s.DurationMS() {
		return s
	}
	n := ms * BytesPerMS
	return Segment{pcm: s.pcm[:n:n]}
}

// PadTo appends silence until the segment lasts ms milliseconds.
func (s Segment) PadTo(ms int) Segment {
	if short := ms - s.DurationMS(); short > 0 {
		return Concat(s, Silence(short))
	}
	return s
}

// Loop repeats the segment until it lasts exactly ms milliseconds.
func (s Segment) Loop(ms int) Segment {
	if s.Empty() || ms <= 0 {
		return Silence(ms)
	}
	reps := ms/s.DurationMS() + 1
	copies := make([]Segment, reps)
	for i := range copies {
		copies[i] = s
	}
	return Concat(copies...).Truncate(ms)
}

// Gain scales every sample by db decibels, saturating at the int16 range.
func (s Segment) Gain(db float64) Segment {
	if db == 0 || s.Empty() {
		return s
	}
	factor := math.Pow(10, db/20)
	out := make([]byte, len(s.pcm))
	for i := 0; i+1 < len(s.pcm); i += BytesPerSample {
		v := float64(int16(binary.LittleEndian.Uint16(s.pcm[i:])))
		binary.LittleEndian.PutUint16(out[i:], uint16(clamp16(math.Round(v*factor))))
	}
	return Segment{pcm: out}
}

// Overlay mixes other on top of s starting at offset zero. The result keeps
// the length of s; samples saturate instead of wrapping.
func (s Segment) Overlay(other Segment) Segment {
	if other.Empty() || s.Empty() {
		return s
	}
	out := make([]byte, len(s.pcm))
	copy(out, s.pcm)
	n := min(len(s.pcm), len(other.pcm))
	for i := 0; i+1 < n; i += BytesPerSample {
		a := int16(binary.LittleEndian.Uint16(s.pcm[i:]))
		b := int16(binary.LittleEndian.Uint16(other.pcm[i:]))
		binary.LittleEndian.PutUint16(out[i:], uint16(clamp16(float64(int32(a)+int32(b)))))
	}
	return Segment{pcm: out}
}

func clamp16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
