package bytepress

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// DefaultWindowSize is the default search span preceding the cursor.
	DefaultWindowSize = 4096
	// DefaultLookaheadSize is the default maximum match length considered.
	DefaultLookaheadSize = 18

	// Wire-format limits: offsets are u16, lengths are u8.
	maxWindowSize    = math.MaxUint16
	maxLookaheadSize = math.MaxUint8

	// A match shorter than the cost of its own encoding is not worth
	// emitting.
	minMatchLength = 3

	lz77HeaderSize = 4
	tokensPerGroup = 8
)

// LZ77 implements a sliding-window dictionary coder.
//
// Wire format: a 4-byte little-endian original-length header, then the token
// stream in groups of up to 8 tokens. Each group is preceded by one flag byte
// whose i-th bit (least significant first) tags the i-th token of the group:
// 0 is a literal (1 raw byte), 1 is a match (2-byte little-endian backward
// offset, 1..=65535, followed by a 1-byte length, 1..=255). A match copies
// length bytes starting offset bytes behind the current output cursor; the
// copied range may overlap the bytes being produced when offset < length.
//
// Compression is deterministic: the longest match wins, and among equally
// long matches the smallest offset (the most recent occurrence) wins.
type LZ77 struct {
	windowSize    int
	lookaheadSize int
}

var _ Codec = LZ77{}

// NewLZ77 returns an LZ77 codec with the default window and lookahead sizes.
func NewLZ77() LZ77 {
	return LZ77{windowSize: DefaultWindowSize, lookaheadSize: DefaultLookaheadSize}
}

// NewLZ77WithConfig returns an LZ77 codec with the given window and lookahead
// sizes. Both must be positive; windowSize must not exceed 65535 nor
// lookaheadSize exceed 255, the wire-format limits.
func NewLZ77WithConfig(windowSize, lookaheadSize int) (LZ77, error) {
	switch {
	case windowSize <= 0:
		return LZ77{}, &InvalidInputError{Reason: "window size must be positive"}
	case windowSize > maxWindowSize:
		return LZ77{}, &InvalidInputError{Reason: fmt.Sprintf("window size %d exceeds wire-format limit %d", windowSize, maxWindowSize)}
	case lookaheadSize <= 0:
		return LZ77{}, &InvalidInputError{Reason: "lookahead size must be positive"}
	case lookaheadSize > maxLookaheadSize:
		return LZ77{}, &InvalidInputError{Reason: fmt.Sprintf("lookahead size %d exceeds wire-format limit %d", lookaheadSize, maxLookaheadSize)}
	}

	return LZ77{windowSize: windowSize, lookaheadSize: lookaheadSize}, nil
}

// WindowSize returns the search span preceding the cursor.
func (c LZ77) WindowSize() int {
	return c.windowSize
}

// LookaheadSize returns the maximum match length considered.
func (c LZ77) LookaheadSize() int {
	return c.lookaheadSize
}

func (c LZ77) Name() string {
	return "LZ77"
}

// findLongestMatch searches the window preceding pos for the longest prefix
// of the lookahead starting at pos. Candidates are scanned nearest-first with
// strict improvement so that ties on length resolve to the smallest offset.
func (c LZ77) findLongestMatch(data []byte, pos int) (offset, length int) {
	maxLen := c.lookaheadSize
	if rest := len(data) - pos; rest < maxLen {
		maxLen = rest
	}
	if maxLen < minMatchLength {
		return 0, 0
	}

	searchStart := pos - c.windowSize
	if searchStart < 0 {
		searchStart = 0
	}

	for start := pos - 1; start >= searchStart; start-- {
		if data[start] != data[pos] {
			continue
		}

		// start+n may run past pos: the match source overlaps the bytes
		// it produces, which the decoder replays byte-by-byte.
		n := 1
		for n < maxLen && data[start+n] == data[pos+n] {
			n++
		}

		if n > length {
			offset, length = pos-start, n
			if length == maxLen {
				break
			}
		}
	}

	return offset, length
}

func (c LZ77) Compress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	if uint64(len(input)) > math.MaxUint32 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("input length %d exceeds the 32-bit header limit", len(input))}
	}

	output := make([]byte, lz77HeaderSize, lz77HeaderSize+len(input)/2)
	binary.LittleEndian.PutUint32(output, uint32(len(input)))

	flagPos := 0
	ntok := tokensPerGroup // forces a fresh flag byte on the first token.

	for pos := 0; pos < len(input); {
		if ntok == tokensPerGroup {
			flagPos = len(output)
			output = append(output, 0)
			ntok = 0
		}

		if offset, length := c.findLongestMatch(input, pos); length >= minMatchLength {
			output[flagPos] |= 1 << ntok
			output = binary.LittleEndian.AppendUint16(output, uint16(offset))
			output = append(output, byte(length))
			pos += length
		} else {
			output = append(output, input[pos])
			pos++
		}
		ntok++
	}

	return output, nil
}

func (c LZ77) Decompress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	if len(input) < lz77HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the length header", ErrInvalidHeader, len(input))
	}

	declared := binary.LittleEndian.Uint32(input)

	// A token is at least one byte and expands to at most 255, so a declared
	// length beyond that is rejected before any allocation sized from it.
	if uint64(declared) > 255*uint64(len(input)-lz77HeaderSize) {
		return nil, fmt.Errorf("%w: declared length %d is unreachable from %d token bytes", ErrInvalidHeader, declared, len(input)-lz77HeaderSize)
	}

	originalLen := int(declared)

	output := make([]byte, 0, originalLen)

	i := lz77HeaderSize
	for len(output) < originalLen {
		if i >= len(input) {
			return nil, fmt.Errorf("%w: token stream produced %d of %d declared bytes", ErrInvalidHeader, len(output), originalLen)
		}

		flags := input[i]
		i++

		for b := 0; b < tokensPerGroup && len(output) < originalLen; b++ {
			if flags&(1<<b) == 0 {
				if i >= len(input) {
					return nil, fmt.Errorf("%w: token stream produced %d of %d declared bytes", ErrInvalidHeader, len(output), originalLen)
				}

				output = append(output, input[i])
				i++
				continue
			}

			if i+3 > len(input) {
				return nil, fmt.Errorf("%w: token stream produced %d of %d declared bytes", ErrInvalidHeader, len(output), originalLen)
			}

			offset := int(binary.LittleEndian.Uint16(input[i:]))
			length := int(input[i+2])
			i += 3

			if offset == 0 || offset > len(output) {
				return nil, fmt.Errorf("%w: back-reference to offset %d with only %d bytes reconstructed", ErrCorruptedData, offset, len(output))
			}
			if length == 0 {
				return nil, fmt.Errorf("%w: zero-length match", ErrCorruptedData)
			}
			if len(output)+length > originalLen {
				return nil, fmt.Errorf("%w: token stream overruns the %d declared bytes", ErrInvalidHeader, originalLen)
			}

			// Copy byte-by-byte: the source range may overlap the bytes
			// being appended when offset < length.
			start := len(output) - offset
			for j := 0; j < length; j++ {
				output = append(output, output[start+j])
			}
		}
	}

	if i != len(input) {
		return nil, fmt.Errorf("%w: %d trailing bytes after the token stream", ErrCorruptedData, len(input)-i)
	}

	return output, nil
}
