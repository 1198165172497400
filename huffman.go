package bytepress

import (
	"container/heap"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/nguyenvq/bytepress/internal/bitio"
)

// Codes deeper than this cannot arise from any input addressable by the
// 32-bit symbol count, so longer lengths in a header are always forged.
const maxCodeLength = 64

// Huffman implements a static-frequency prefix coder with canonical codes.
//
// Wire format: a uvarint count of code table entries (1..=256); that many
// (symbol, code length) byte pairs sorted by (length, symbol); a uvarint
// count of encoded symbols; the bit-packed code sequence for every input byte
// in original order, most significant bit first, final byte zero-padded.
//
// Codes are canonical, so the table of lengths alone reconstructs them
// deterministically. Tree shape is reproducible: merge ties are broken by
// node insertion order, with leaves seeded in ascending byte order.
type Huffman struct{}

var _ Codec = Huffman{}

// NewHuffman returns the Huffman codec.
func NewHuffman() Huffman {
	return Huffman{}
}

func (Huffman) Name() string {
	return "Huffman"
}

// huffNode is one arena slot; left and right index the arena, -1 for leaves.
type huffNode struct {
	freq   int
	symbol byte
	leaf   bool
	left   int
	right  int
}

// huffHeap orders arena indices by frequency, then by insertion order.
type huffHeap struct {
	nodes *[]huffNode
	order []int
}

func (h *huffHeap) Len() int { return len(h.order) }

func (h *huffHeap) Less(i, j int) bool {
	a, b := h.order[i], h.order[j]
	if fa, fb := (*h.nodes)[a].freq, (*h.nodes)[b].freq; fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *huffHeap) Swap(i, j int) { h.order[i], h.order[j] = h.order[j], h.order[i] }

func (h *huffHeap) Push(x any) { h.order = append(h.order, x.(int)) }

func (h *huffHeap) Pop() any {
	n := len(h.order)
	x := h.order[n-1]
	h.order = h.order[:n-1]
	return x
}

// codeLengths builds the merge tree for the given frequency table and returns
// the code length assigned to every occurring symbol. The degenerate
// single-symbol alphabet yields a length of 1, never 0.
func codeLengths(freq *[256]int) [256]uint8 {
	nodes := make([]huffNode, 0, 511)
	h := &huffHeap{nodes: &nodes}

	for b := 0; b < 256; b++ {
		if freq[b] > 0 {
			h.order = append(h.order, len(nodes))
			nodes = append(nodes, huffNode{freq: freq[b], symbol: byte(b), leaf: true, left: -1, right: -1})
		}
	}
	heap.Init(h)

	for h.Len() > 1 {
		left := heap.Pop(h).(int)
		right := heap.Pop(h).(int)
		// The merged node must be in the arena before Push, whose sift-up
		// compares it against the remaining entries.
		nodes = append(nodes, huffNode{freq: nodes[left].freq + nodes[right].freq, left: left, right: right})
		heap.Push(h, len(nodes)-1)
	}
	root := h.order[0]

	var lengths [256]uint8

	type frame struct {
		node  int
		depth uint8
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n := nodes[f.node]; n.leaf {
			if f.depth == 0 {
				// Single distinct symbol: the root is a leaf, but a usable
				// code still needs one bit.
				lengths[n.symbol] = 1
			} else {
				lengths[n.symbol] = f.depth
			}
		} else {
			stack = append(stack, frame{node: n.left, depth: f.depth + 1}, frame{node: n.right, depth: f.depth + 1})
		}
	}

	return lengths
}

// codeTableEntry is one serialized (symbol, code length) pair.
type codeTableEntry struct {
	symbol byte
	length uint8
}

// bitCode is an assigned canonical code.
type bitCode struct {
	bits   uint64
	length uint8
}

// canonicalCodes assigns code bits to entries, which must already be sorted
// by (length, symbol). The i-th return value is the code for entries[i].
func canonicalCodes(entries []codeTableEntry) []uint64 {
	codes := make([]uint64, len(entries))

	var code uint64
	prev := entries[0].length
	for i, e := range entries {
		if i > 0 {
			code = (code + 1) << (e.length - prev)
			prev = e.length
		}
		codes[i] = code
	}

	return codes
}

func (Huffman) Compress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	if uint64(len(input)) > math.MaxUint32 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("input length %d exceeds the 32-bit symbol count limit", len(input))}
	}

	var freq [256]int
	for _, b := range input {
		freq[b]++
	}

	lengths := codeLengths(&freq)

	entries := make([]codeTableEntry, 0, 256)
	for b := 0; b < 256; b++ {
		if lengths[b] > 0 {
			entries = append(entries, codeTableEntry{symbol: byte(b), length: lengths[b]})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].length != entries[j].length {
			return entries[i].length < entries[j].length
		}
		return entries[i].symbol < entries[j].symbol
	})

	codes := canonicalCodes(entries)

	var bySymbol [256]bitCode
	for i, e := range entries {
		bySymbol[e.symbol] = bitCode{bits: codes[i], length: e.length}
	}

	output := binary.AppendUvarint(nil, uint64(len(entries)))
	for _, e := range entries {
		output = append(output, e.symbol, byte(e.length))
	}
	output = binary.AppendUvarint(output, uint64(len(input)))

	var w bitio.Writer
	for _, b := range input {
		c := bySymbol[b]
		w.WriteBits(c.bits, int(c.length))
	}

	return append(output, w.Bytes()...), nil
}

func (Huffman) Decompress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	entryCount, n := binary.Uvarint(input)
	if n <= 0 {
		return nil, fmt.Errorf("%w: unreadable code table count", ErrInvalidHeader)
	}
	if entryCount == 0 || entryCount > 256 {
		return nil, fmt.Errorf("%w: code table with %d entries", ErrInvalidHeader, entryCount)
	}
	pos := n

	k := int(entryCount)
	if pos+2*k > len(input) {
		return nil, fmt.Errorf("%w: truncated code table", ErrInvalidHeader)
	}

	entries := make([]codeTableEntry, k)
	var seen [256]bool
	for i := range entries {
		symbol, length := input[pos], input[pos+1]
		pos += 2

		switch {
		case length == 0:
			return nil, fmt.Errorf("%w: zero code length for symbol %#02x", ErrInvalidHeader, symbol)
		case length > maxCodeLength:
			return nil, fmt.Errorf("%w: code length %d for symbol %#02x", ErrInvalidHeader, length, symbol)
		case seen[symbol]:
			return nil, fmt.Errorf("%w: duplicate symbol %#02x in code table", ErrInvalidHeader, symbol)
		case i > 0 && (length < entries[i-1].length || (length == entries[i-1].length && symbol < entries[i-1].symbol)):
			return nil, fmt.Errorf("%w: code table not in canonical order", ErrInvalidHeader)
		}

		seen[symbol] = true
		entries[i] = codeTableEntry{symbol: symbol, length: length}
	}

	symbolCount, n := binary.Uvarint(input[pos:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: unreadable symbol count", ErrInvalidHeader)
	}
	pos += n

	root, nodes, err := buildDecodeTree(entries)
	if err != nil {
		return nil, err
	}

	payload := input[pos:]

	// Every symbol consumes at least one bit, so a count the payload cannot
	// possibly hold is rejected before any allocation sized from it.
	if symbolCount > uint64(8*len(payload)) {
		return nil, fmt.Errorf("%w: %d symbols declared for a %d-byte bitstream", ErrCorruptedData, symbolCount, len(payload))
	}

	r := bitio.NewReader(payload)
	output := make([]byte, 0, symbolCount)

	for uint64(len(output)) < symbolCount {
		node := root
		for !nodes[node].leaf {
			bit, err := r.ReadBit()
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: bitstream ended after %d of %d symbols", ErrCorruptedData, len(output), symbolCount)
			}

			if bit == 0 {
				node = nodes[node].left
			} else {
				node = nodes[node].right
			}
			if node < 0 {
				return nil, fmt.Errorf("%w: bit sequence reaches no leaf", ErrCorruptedData)
			}
		}

		output = append(output, nodes[node].symbol)
	}

	if (r.Offset()+7)/8 != len(payload) {
		return nil, fmt.Errorf("%w: trailing bytes after the bitstream", ErrCorruptedData)
	}

	return output, nil
}

// buildDecodeTree reconstructs the canonical codes from the table entries and
// inserts each into an arena-backed decode tree.
func buildDecodeTree(entries []codeTableEntry) (root int, nodes []huffNode, err error) {
	nodes = []huffNode{{left: -1, right: -1}}
	codes := canonicalCodes(entries)

	for i, e := range entries {
		code := codes[i]
		if e.length < 64 && code >= 1<<e.length {
			return 0, nil, fmt.Errorf("%w: code table is not a prefix code", ErrInvalidHeader)
		}

		node := 0
		for j := int(e.length) - 1; j >= 0; j-- {
			if nodes[node].leaf {
				return 0, nil, fmt.Errorf("%w: code table is not a prefix code", ErrInvalidHeader)
			}

			var next int
			if code>>j&1 == 0 {
				next = nodes[node].left
			} else {
				next = nodes[node].right
			}

			if next < 0 {
				next = len(nodes)
				nodes = append(nodes, huffNode{symbol: e.symbol, leaf: j == 0, left: -1, right: -1})
				if code>>j&1 == 0 {
					nodes[node].left = next
				} else {
					nodes[node].right = next
				}
			} else if j == 0 {
				return 0, nil, fmt.Errorf("%w: code table is not a prefix code", ErrInvalidHeader)
			}

			node = next
		}
	}

	return 0, nodes, nil
}
