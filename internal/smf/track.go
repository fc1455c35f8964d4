package smf

import (
	"encoding/binary"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
)

var endOfTrack = []byte{0xFF, 0x2F, 0x00}

type event struct {
	tick int
	data []byte
}

// Track is an append-only list of timed MIDI events for one MTrk chunk.
type Track struct {
	events []event
	tempo  bool
}

// NewTrack returns an empty track.
func NewTrack() *Track {
	return &Track{}
}

// SetTempo records the tempo meta-event at tick 0. Only the first call has effect.
func (t *Track) SetTempo(bpm float64) {
	if t.tempo || bpm <= 0 {
		return
	}
	t.tempo = true

	usPerBeat := uint32(math.Floor(60000000/bpm + 0.5))
	meta := []byte{0xFF, 0x51, 0x03, byte(usPerBeat >> 16), byte(usPerBeat >> 8), byte(usPerBeat)}
	t.events = append([]event{{tick: 0, data: meta}}, t.events...)
}

// AddNote appends a note-on/note-off pair. Pitch and velocity are clamped to
// 0-127 and negative ticks to 0.
func (t *Track) AddNote(channel uint8, pitch, velocity, startTick, durationTicks int) {
	key := uint8(clamp(pitch, 0, 127))
	vel := uint8(clamp(velocity, 0, 127))
	start := max(startTick, 0)
	end := max(start+max(durationTicks, 0), start)

	t.events = append(t.events,
		event{tick: start, data: midi.NoteOn(channel&0x0F, key, vel)},
		event{tick: end, data: midi.NoteOff(channel&0x0F, key)},
	)
}

// Len reports the number of events, excluding end-of-track.
func (t *Track) Len() int {
	return len(t.events)
}

// Bytes renders the track payload: delta-timed events in tick order followed
// by the end-of-track meta-event. Events sharing a tick keep insertion order.
func (t *Track) Bytes() []byte {
	sorted := make([]event, len(t.events))
	copy(sorted, t.events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].tick < sorted[j].tick })

	var out []byte
	last := 0
	for _, ev := range sorted {
		out = append(out, EncodeVarLen(uint32(ev.tick-last))...)
		out = append(out, ev.data...)
		last = ev.tick
	}
	out = append(out, 0x00)
	out = append(out, endOfTrack...)
	return out
}

// Chunk wraps the payload in an MTrk header with its big-endian length.
func (t *Track) Chunk() []byte {
	payload := t.Bytes()
	chunk := make([]byte, 8, 8+len(payload))
	copy(chunk, "MTrk")
	binary.BigEndian.PutUint32(chunk[4:], uint32(len(payload)))
	return append(chunk, payload...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
