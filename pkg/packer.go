package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Pack concatenates the code of every symbol of stream, most significant
// bit first, and zero-pads the last byte. It returns the packed bytes and
// the number of padding bits (0-7).
func Pack(stream []string, codes CodeTable) ([]byte, int, error) {
	if len(stream) == 0 {
		return []byte{}, 0, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, codes.BitLength(stream)/8+1))
	w := bitio.NewWriter(buf)
	for i, symbol := range stream {
		code, ok := codes[symbol]
		if !ok || code == "" {
			return nil, 0, fmt.Errorf("no code for symbol %q at position %d", symbol, i)
		}
		for j := 0; j < len(code); j++ {
			if err := w.WriteBool(code[j] == '1'); err != nil {
				return nil, 0, fmt.Errorf("error writing bits: %w", err)
			}
		}
	}

	skipped, err := w.Align()
	if err != nil {
		return nil, 0, fmt.Errorf("error aligning bit stream: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, 0, fmt.Errorf("error flushing bit stream: %w", err)
	}
	return buf.Bytes(), int(skipped), nil
}
