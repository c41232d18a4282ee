package huffman

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Mode selects the symbol granularity.
type Mode int

const (
	// CharMode makes every code point a symbol.
	CharMode Mode = iota
	// WordMode makes every maximal run of ASCII letters a symbol, and every
	// other code point a symbol of its own.
	WordMode
)

var modeStrings = []string{
	"char",
	"word",
}

func (m Mode) String() string {
	if m < CharMode || m > WordMode {
		return "UNKNOWN"
	}
	return modeStrings[m]
}

func ParseMode(s string) (Mode, error) {
	for i, v := range modeStrings {
		if v == s {
			return Mode(i), nil
		}
	}
	return CharMode, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// FrequencyTable counts symbol occurrences. Symbols keeps the distinct
// symbols in order of first appearance, which fixes tree tie-breaking.
type FrequencyTable struct {
	Symbols []string
	Counts  map[string]int
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{Counts: make(map[string]int)}
}

func (f *FrequencyTable) Add(symbol string) {
	if _, ok := f.Counts[symbol]; !ok {
		f.Symbols = append(f.Symbols, symbol)
	}
	f.Counts[symbol]++
}

func (f *FrequencyTable) Len() int {
	return len(f.Symbols)
}

// Analyze tokenizes text and counts its symbols. Joining the returned
// stream gives back text exactly.
func Analyze(text string, mode Mode) ([]string, *FrequencyTable, error) {
	stream, err := Tokenize(text, mode)
	if err != nil {
		return nil, nil, err
	}
	freqs := NewFrequencyTable()
	for _, symbol := range stream {
		freqs.Add(symbol)
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("%d symbols, %d distinct (%s mode)", len(stream), freqs.Len(), mode)
		logger.Info(message, "frequency")
	}
	return stream, freqs, nil
}

// Tokenize splits text into its symbol stream.
func Tokenize(text string, mode Mode) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	switch mode {
	case CharMode:
		return tokenizeChars(text), nil
	case WordMode:
		return tokenizeWords(text), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

func tokenizeChars(text string) []string {
	stream := make([]string, 0, len(text))
	for i, r := range text {
		stream = append(stream, text[i:i+utf8.RuneLen(r)])
	}
	return stream
}

func tokenizeWords(text string) []string {
	stream := make([]string, 0, len(text)/4)
	for i := 0; i < len(text); {
		if isLetter(text[i]) {
			j := i + 1
			for j < len(text) && isLetter(text[j]) {
				j++
			}
			stream = append(stream, text[i:j])
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		stream = append(stream, text[i:i+size])
		i += size
	}
	return stream
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
