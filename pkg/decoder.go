package huffman

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/icza/bitio"
)

// parseHuffmanLine walks code from the root creating the missing nodes and
// marks the last one as the leaf of symbol.
func parseHuffmanLine(symbol string, code string, huffman *HuffmanNode) error {
	if code == "" {
		return fmt.Errorf("%w: empty code for symbol %q", ErrMalformedSymbolTable, symbol)
	}
	currentNode := huffman

	for bitcount := 0; bitcount < len(code); bitcount++ {
		if currentNode.Leaf {
			return fmt.Errorf("%w: code of %q extends the code of %q", ErrMalformedSymbolTable, symbol, currentNode.Symbol)
		}
		bit := code[bitcount] - '0'
		if bit > 1 {
			return fmt.Errorf("%w: code %q for symbol %q is not binary", ErrMalformedSymbolTable, code, symbol)
		}
		if currentNode.NextNodes[bit] == nil {
			currentNode.NextNodes[bit] = &HuffmanNode{}
		}
		currentNode = currentNode.NextNodes[bit]
	}

	if currentNode.Leaf {
		return fmt.Errorf("%w: symbols %q and %q share code %s", ErrMalformedSymbolTable, currentNode.Symbol, symbol, code)
	}
	if currentNode.NextNodes[0] != nil || currentNode.NextNodes[1] != nil {
		return fmt.Errorf("%w: code of %q is a prefix of another code", ErrMalformedSymbolTable, symbol)
	}
	currentNode.Leaf = true
	currentNode.Symbol = symbol
	return nil
}

// BuildDecodeTree rebuilds a traversal tree from the codes alone.
func BuildDecodeTree(codes CodeTable) (*HuffmanNode, error) {
	root := &HuffmanNode{}
	symbols := make([]string, 0, len(codes))
	for symbol := range codes {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		if err := parseHuffmanLine(symbol, codes[symbol], root); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Decode walks packed through the tree rebuilt from table and returns the
// symbol stream. The stream must end exactly on a leaf and the padding
// bits must be zero, otherwise ErrCorruptArtifact is returned.
func Decode(table SymbolTable, packed []byte) ([]string, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	root, err := BuildDecodeTree(table.Codes)
	if err != nil {
		return nil, err
	}

	totalBits := len(packed)*8 - table.Padding
	if totalBits < 0 {
		return nil, fmt.Errorf("%w: padding %d longer than %d packed bytes", ErrCorruptArtifact, table.Padding, len(packed))
	}
	if totalBits > 0 && len(table.Codes) == 0 {
		return nil, fmt.Errorf("%w: %d bits with an empty code table", ErrCorruptArtifact, totalBits)
	}

	r := bitio.NewReader(bytes.NewReader(packed))
	decoded := make([]string, 0, totalBits/8+1)
	node := root
	depth := 0

	for i := 0; i < totalBits; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("%w: reading bit %d: %v", ErrCorruptArtifact, i, err)
		}
		next := node.NextNodes[0]
		if bit {
			next = node.NextNodes[1]
		}
		if next == nil {
			return nil, fmt.Errorf("%w: dead end at bit %d after %d symbols", ErrCorruptArtifact, i, len(decoded))
		}
		node = next
		depth++
		if node.Leaf {
			decoded = append(decoded, node.Symbol)
			node = root
			depth = 0
		}
	}
	if node != root {
		return nil, fmt.Errorf("%w: stream ends inside a code (%d bits pending) after %d symbols", ErrCorruptArtifact, depth, len(decoded))
	}

	if table.Padding > 0 {
		padding, err := r.ReadBits(uint8(table.Padding))
		if err != nil {
			return nil, fmt.Errorf("%w: reading padding: %v", ErrCorruptArtifact, err)
		}
		if padding != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bits", ErrCorruptArtifact)
		}
	}
	return decoded, nil
}
