package smf

import (
	"encoding/binary"
	"errors"
)

// TicksPerBeat is the division written into every header.
const TicksPerBeat = 480

const headerLen = 14

var ErrNoTracks = errors.New("no tracks to encode")

// Header builds the 14-byte MThd chunk. Format is 0 for a single track, 1 otherwise.
func Header(trackCount int) []byte {
	h := make([]byte, headerLen)
	copy(h, "MThd")
	binary.BigEndian.PutUint32(h[4:], 6)

	format := uint16(1)
	if trackCount == 1 {
		format = 0
	}
	binary.BigEndian.PutUint16(h[8:], format)
	binary.BigEndian.PutUint16(h[10:], uint16(trackCount))
	binary.BigEndian.PutUint16(h[12:], TicksPerBeat)
	return h
}

// Encode concatenates the header with one chunk per track.
func Encode(chunks [][]byte) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, ErrNoTracks
	}

	size := headerLen
	for _, c := range chunks {
		size += len(c)
	}

	out := make([]byte, 0, size)
	out = append(out, Header(len(chunks))...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out, nil
}
