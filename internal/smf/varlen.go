package smf

import (
	"errors"
	"fmt"
)

// MaxVarLen is the largest delta a four byte variable-length quantity can carry.
const MaxVarLen = 0x0FFFFFFF

var ErrTruncatedVarLen = errors.New("truncated variable-length quantity")

// EncodeVarLen encodes v as a MIDI variable-length quantity: 7 bits per byte,
// most significant group first, continuation bit set on every byte but the last.
// Values above MaxVarLen are a programming error and panic.
func EncodeVarLen(v uint32) []byte {
	if v > MaxVarLen {
		panic(fmt.Sprintf("smf: delta %d exceeds variable-length ceiling", v))
	}

	buf := []byte{byte(v & 0x7F)}
	v >>= 7
	for v > 0 {
		buf = append([]byte{byte(v&0x7F) | 0x80}, buf...)
		v >>= 7
	}
	return buf
}

// DecodeVarLen reads one variable-length quantity from the front of b and
// returns the value and the number of bytes consumed.
func DecodeVarLen(b []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < len(b) && i < 4; i++ {
		v = v<<7 | uint32(b[i]&0x7F)
		if b[i]&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncatedVarLen
}
