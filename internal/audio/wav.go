package audio

import (
	"bufio"
	"encoding/binary"
	"io"

	"lingoreel/internal/fileutil"
)

const wavHeaderSize = 44

// WriteWAV encodes s as a canonical PCM WAV stream.
func WriteWAV(w io.Writer, s Segment) error {
	dataLen := uint32(len(s.pcm))
	header := make([]byte, wavHeaderSize)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], 36+dataLen)
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1)
	binary.LittleEndian.PutUint16(header[22:], Channels)
	binary.LittleEndian.PutUint32(header[24:], SampleRate)
	binary.LittleEndian.PutUint32(header[28:], SampleRate*Channels*BytesPerSample)
	binary.LittleEndian.PutUint16(header[32:], Channels*BytesPerSample)
	binary.LittleEndian.PutUint16(header[34:], BytesPerSample*8)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], dataLen)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return err
	}
	if _, err := bw.Write(s.pcm); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveWAV writes s to path atomically.
func SaveWAV(path string, s Segment) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteWAV(w, s)
	})
}
