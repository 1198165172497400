package bytepress

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allByteValues returns one copy of every byte value in ascending order.
func allByteValues() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// pseudorandomBytes returns n maximal-entropy bytes from a fixed seed.
func pseudorandomBytes(n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(42)).Read(b)
	return b
}

func newCustomLZ77(t *testing.T) Codec {
	c, err := NewLZ77WithConfig(256, 32)
	require.NoError(t, err)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "single byte", data: []byte{0x42}},
		{name: "text", data: []byte("hello world, this is a test of compression algorithms!")},
		{name: "all byte values", data: allByteValues()},
		{name: "repetitive", data: bytes.Repeat([]byte("na"), 200)},
		{name: "maximal entropy", data: pseudorandomBytes(1024)},
	}

	for _, codec := range []Codec{NewRLE(), NewLZ77(), newCustomLZ77(t), NewHuffman()} {
		t.Run(codec.Name(), func(t *testing.T) {
			for _, tt := range inputs {
				t.Run(tt.name, func(t *testing.T) {
					compressed, err := codec.Compress(tt.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					assert.Equal(t, tt.data, decompressed)
				})
			}
		})
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, codec := range []Codec{NewRLE(), NewLZ77(), NewHuffman()} {
		t.Run(codec.Name(), func(t *testing.T) {
			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)
			assert.Empty(t, compressed)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Empty(t, decompressed)
		})
	}
}

func TestCodec_NameStability(t *testing.T) {
	tests := []struct {
		expected string
		codecs   []Codec
	}{
		{
			expected: "RLE",
			codecs:   []Codec{NewRLE(), NewRLE()},
		},
		{
			expected: "LZ77",
			codecs:   []Codec{NewLZ77(), newCustomLZ77(t)},
		},
		{
			expected: "Huffman",
			codecs:   []Codec{NewHuffman(), NewHuffman()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			for _, codec := range tt.codecs {
				assert.Equal(t, tt.expected, codec.Name())
				assert.Equal(t, tt.expected, codec.Name())
			}
		})
	}
}

func TestCodec_DeterministicOutput(t *testing.T) {
	input := []byte("deterministic compression output, byte for byte")

	for _, codec := range []Codec{NewRLE(), NewLZ77(), NewHuffman()} {
		t.Run(codec.Name(), func(t *testing.T) {
			first, err := codec.Compress(input)
			require.NoError(t, err)

			second, err := codec.Compress(input)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestCodec_ConcurrentUse(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello world, this is a test of compression algorithms!"),
		bytes.Repeat([]byte("na"), 200),
		allByteValues(),
		pseudorandomBytes(1024),
	}

	for _, codec := range []Codec{NewRLE(), NewLZ77(), NewHuffman()} {
		t.Run(codec.Name(), func(t *testing.T) {
			// One shared codec value across all goroutines; run with -race.
			results := make([][]byte, 8*len(inputs))

			var wg sync.WaitGroup
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					data, err := roundTrip(codec, inputs[i%len(inputs)])
					if err == nil {
						results[i] = data
					}
				}(i)
			}
			wg.Wait()

			for i, data := range results {
				assert.Equal(t, inputs[i%len(inputs)], data)
			}
		})
	}
}

func TestNewCodecFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		known    bool
	}{
		{name: "rle", expected: "RLE", known: true},
		{name: "lz77", expected: "LZ77", known: true},
		{name: "huffman", expected: "Huffman", known: true},
		{name: "huff", expected: "Huffman", known: true},
		{name: "zstd", expected: "LZ77", known: false},
		{name: "", expected: "LZ77", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, known := NewCodecFromName(tt.name)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.expected, codec.Name())
		})
	}
}

func TestNewCodecFromExt(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{ext: ".rle", expected: "RLE"},
		{ext: ".lz77", expected: "LZ77"},
		{ext: ".huff", expected: "Huffman"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			codec := NewCodecFromExt(tt.ext)
			require.NotNil(t, codec)
			assert.Equal(t, tt.expected, codec.Name())
		})
	}

	assert.Nil(t, NewCodecFromExt(".gz"))
	assert.Nil(t, NewCodecFromExt(""))
}

func TestExtForAlgorithm(t *testing.T) {
	assert.Equal(t, ".rle", ExtForAlgorithm("rle"))
	assert.Equal(t, ".lz77", ExtForAlgorithm("lz77"))
	assert.Equal(t, ".huff", ExtForAlgorithm("huffman"))
	assert.Equal(t, "", ExtForAlgorithm("zstd"))
}

// mockCodec exercises the error types reserved for codec implementations
// outside this package.
type mockCodec struct{}

var _ Codec = mockCodec{}

func (mockCodec) Compress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, &InvalidInputError{Reason: "empty input"}
	}
	return input, nil
}

func (mockCodec) Decompress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, &DecompressionError{Reason: "empty input"}
	}
	return input, nil
}

func (mockCodec) Name() string {
	return "mock"
}

// roundTrip operates over any Codec value without knowing its concrete type.
func roundTrip(codec Codec, data []byte) ([]byte, error) {
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}
	return codec.Decompress(compressed)
}

func TestCodec_PolymorphicUse(t *testing.T) {
	data, err := roundTrip(mockCodec{}, []byte("test"))
	require.NoError(t, err)
	assert.Equal(t, []byte("test"), data)

	var invalidInput *InvalidInputError
	_, err = mockCodec{}.Compress(nil)
	assert.ErrorAs(t, err, &invalidInput)

	var decompression *DecompressionError
	_, err = mockCodec{}.Decompress(nil)
	assert.ErrorAs(t, err, &decompression)
}
