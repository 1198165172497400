package bytepress

import (
	"fmt"
)

const maxRunLength = 255

// RLE implements run-length encoding.
//
// Wire format: a sequence of (count, byte) pairs where count is 1..=255.
// Every maximal run of identical input bytes becomes one pair; runs longer
// than 255 split into multiple pairs, and runs of length 1 are emitted as
// (1, byte). Non-repetitive input therefore expands up to 2x, which is an
// accepted property of the format, not an error.
type RLE struct{}

var _ Codec = RLE{}

// NewRLE returns the run-length codec.
func NewRLE() RLE {
	return RLE{}
}

func (RLE) Name() string {
	return "RLE"
}

func (RLE) Compress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	output := make([]byte, 0, len(input))

	for i := 0; i < len(input); {
		b := input[i]
		run := 1
		for i+run < len(input) && input[i+run] == b && run < maxRunLength {
			run++
		}

		output = append(output, byte(run), b)
		i += run
	}

	return output, nil
}

func (RLE) Decompress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	if len(input)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length rle stream", ErrCorruptedData)
	}

	var size int
	for i := 0; i < len(input); i += 2 {
		size += int(input[i])
	}

	output := make([]byte, 0, size)
	for i := 0; i < len(input); i += 2 {
		count, b := input[i], input[i+1]

		// A zero count can never be produced by Compress.
		if count == 0 {
			return nil, fmt.Errorf("%w: zero-length run", ErrCorruptedData)
		}

		for j := byte(0); j < count; j++ {
			output = append(output, b)
		}
	}

	return output, nil
}
