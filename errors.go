package bytepress

import (
	"errors"
)

// Sentinel errors returned by Decompress when the input does not describe a
// valid compressed blob. Failure sites wrap these with additional context via
// fmt.Errorf and %w so errors.Is can always classify the failure.
var (
	// ErrBufferTooSmall indicates a declared or implied output size exceeds
	// what reconstruction can produce. It is part of the public taxonomy for
	// codec implementations to use; the built-in codecs report length
	// disagreements as ErrInvalidHeader instead.
	ErrBufferTooSmall = errors.New("buffer too small for output")

	// ErrInvalidHeader indicates structural header fields failed validation,
	// or the reconstructed output disagrees with the declared length.
	ErrInvalidHeader = errors.New("invalid compression header")

	// ErrCorruptedData indicates payload content that is inconsistent with
	// its header, e.g. a dangling back-reference, a truncated bitstream, or
	// an odd-length RLE stream.
	ErrCorruptedData = errors.New("corrupted compressed data")
)

// InvalidInputError is returned when a caller-supplied argument is
// semantically invalid, e.g. a zero window size or an input too large for the
// wire format's 32-bit length fields.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// DecompressionError is a generic decode failure with a human-readable cause.
//
// The built-in codecs report decode failures with the more specific
// ErrInvalidHeader and ErrCorruptedData; this type is for Decompressor
// implementations outside this package that have no finer classification.
type DecompressionError struct {
	Reason string
}

func (e *DecompressionError) Error() string {
	return "decompression error: " + e.Reason
}
