package huffman

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// CodeTable maps each symbol to its code, a string of '0' and '1'.
type CodeTable map[string]string

func (c CodeTable) Clone() CodeTable {
	if c == nil {
		return CodeTable{}
	}
	return maps.Clone(c)
}

func (c CodeTable) Equal(other CodeTable) bool {
	return maps.Equal(c, other)
}

// SortedSymbols returns the symbols ordered by code length, then code.
func (c CodeTable) SortedSymbols() []string {
	symbols := make([]string, 0, len(c))
	for symbol := range c {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		ci, cj := c[symbols[i]], c[symbols[j]]
		if len(ci) != len(cj) {
			return len(ci) < len(cj)
		}
		return ci < cj
	})
	return symbols
}

// PrefixFree reports whether no code is a prefix of another one. Sorting
// puts every prefix right before the codes it starts, so checking
// neighbours is enough.
func (c CodeTable) PrefixFree() bool {
	codes := make([]string, 0, len(c))
	for _, code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for i := 1; i < len(codes); i++ {
		if strings.HasPrefix(codes[i], codes[i-1]) {
			return false
		}
	}
	return true
}

// BitLength is the number of bits needed to encode stream with c.
func (c CodeTable) BitLength(stream []string) int {
	total := 0
	for _, symbol := range stream {
		total += len(c[symbol])
	}
	return total
}

type pathEntry struct {
	node *HuffmanNode
	code string
}

// AssignCodes walks the tree with an explicit stack. A leaf root gets the
// code "0".
func AssignCodes(root *HuffmanNode) CodeTable {
	codes := make(CodeTable)
	if root == nil {
		return codes
	}
	if root.Leaf {
		codes[root.Symbol] = "0"
		return codes
	}

	stack := []pathEntry{{node: root}}
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if entry.node.Leaf {
			codes[entry.node.Symbol] = entry.code
			continue
		}
		// push '1' first so the '0' branch is visited first
		for bit := 1; bit >= 0; bit-- {
			if next := entry.node.NextNodes[bit]; next != nil {
				stack = append(stack, pathEntry{node: next, code: entry.code + string(rune('0'+bit))})
			}
		}
	}

	if configuration.Verbosity > 2 {
		for _, symbol := range codes.SortedSymbols() {
			logger.Info(fmt.Sprintf("%q -> %s", symbol, codes[symbol]), "codes")
		}
	}
	return codes
}
