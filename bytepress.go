// Package bytepress implements three self-contained lossless byte-stream
// compression codecs behind one uniform compress/decompress contract:
// run-length encoding (RLE), a sliding-window dictionary coder (LZ77), and a
// static-frequency prefix coder (Huffman).
//
// Each codec consumes a complete in-memory buffer and produces a complete
// in-memory buffer; there is no streaming. Compressed blobs are opaque and
// algorithm-specific: a blob produced by one codec is never auto-detected or
// decoded by another.
package bytepress

// DefaultAlgorithmName is the name of the default compression algorithm.
const DefaultAlgorithmName = "lz77"

// NewCodecFromName returns a Codec from the given algorithm name.
//
// The second return value reports whether the name was recognised; when it is
// false the returned Codec is the default algorithm.
func NewCodecFromName(name string) (Codec, bool) {
	switch name {
	case "rle":
		return NewRLE(), true
	case "lz77":
		return NewLZ77(), true
	case "huffman", "huff":
		return NewHuffman(), true
	default:
		return NewLZ77(), false
	}
}

// NewCodecFromExt returns the Codec for blobs carrying the given file name
// extension, or nil if the extension is not recognised.
func NewCodecFromExt(ext string) Codec {
	switch ext {
	case ".rle":
		return NewRLE()
	case ".lz77":
		return NewLZ77()
	case ".huff":
		return NewHuffman()
	default:
		return nil
	}
}

// ExtForAlgorithm returns the conventional file name extension for blobs
// produced by the named algorithm, or the empty string if the name is not
// recognised.
func ExtForAlgorithm(name string) string {
	switch name {
	case "rle":
		return ".rle"
	case "lz77":
		return ".lz77"
	case "huffman", "huff":
		return ".huff"
	default:
		return ""
	}
}
