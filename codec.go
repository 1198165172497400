package bytepress

// Compressor compresses a whole in-memory buffer in one call.
type Compressor interface {
	// Compress transforms input into a compressed blob.
	//
	// The blob's layout is algorithm-specific and is only understood by the
	// Decompressor of the same algorithm family; callers are responsible for
	// pairing Compress and Decompress on the same family.
	Compress(input []byte) ([]byte, error)

	// Name returns a constant algorithm identifier, stable across calls and
	// across instances of the same codec.
	Name() string
}

// Decompressor reconstructs the original buffer from a compressed blob.
type Decompressor interface {
	// Decompress reverses Compress of the same algorithm family exactly.
	//
	// Malformed input never panics or loops forever; it is reported as
	// ErrInvalidHeader, ErrCorruptedData, or a DecompressionError.
	Decompress(input []byte) ([]byte, error)

	// Name returns a constant algorithm identifier, stable across calls and
	// across instances of the same codec.
	Name() string
}

// Codec combines both capabilities. For every codec C and every input x
// within the documented size bounds, C.Decompress(C.Compress(x)) == x.
//
// Codec values hold only static configuration set at construction; they keep
// no per-call state and are safe for concurrent use without coordination.
type Codec interface {
	Compressor
	Decompressor
}
