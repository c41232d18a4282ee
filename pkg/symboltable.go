package huffman

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PaddingKey is the reserved symbol table key holding the padding count.
// No symbol can be equal to it: char-mode symbols are single code points and
// word mode splits on '_'.
const PaddingKey = "padding_length"

// SymbolTable is the code table shared by both ends, plus the number of
// zero bits appended to the packed stream.
type SymbolTable struct {
	Codes   CodeTable
	Padding int
}

func (t SymbolTable) Equal(other SymbolTable) bool {
	return t.Padding == other.Padding && t.Codes.Equal(other.Codes)
}

// Validate checks the padding range and that the codes form a non-empty
// binary prefix-free code.
func (t SymbolTable) Validate() error {
	if t.Padding < 0 || t.Padding > 7 {
		return fmt.Errorf("%w: padding %d outside [0,7]", ErrMalformedSymbolTable, t.Padding)
	}
	for symbol, code := range t.Codes {
		if symbol == PaddingKey {
			return fmt.Errorf("%w: symbol collides with reserved key %q", ErrMalformedSymbolTable, PaddingKey)
		}
		if code == "" {
			return fmt.Errorf("%w: empty code for symbol %q", ErrMalformedSymbolTable, symbol)
		}
		if strings.Trim(code, "01") != "" {
			return fmt.Errorf("%w: code %q for symbol %q is not binary", ErrMalformedSymbolTable, code, symbol)
		}
	}
	if !t.Codes.PrefixFree() {
		return fmt.Errorf("%w: codes are not prefix-free", ErrMalformedSymbolTable)
	}
	return nil
}

// MarshalJSON writes {"<symbol>": "<code>", ..., "padding_length": n}.
func (t SymbolTable) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	m := make(map[string]interface{}, len(t.Codes)+1)
	for symbol, code := range t.Codes {
		m[symbol] = code
	}
	m[PaddingKey] = t.Padding
	return json.Marshal(m)
}

func (t *SymbolTable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSymbolTable, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: not an object", ErrMalformedSymbolTable)
	}

	paddingRaw, ok := raw[PaddingKey]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrMalformedSymbolTable, PaddingKey)
	}
	var padding int
	if err := json.Unmarshal(paddingRaw, &padding); err != nil {
		return fmt.Errorf("%w: %q is not an integer: %v", ErrMalformedSymbolTable, PaddingKey, err)
	}
	delete(raw, PaddingKey)

	codes := make(CodeTable, len(raw))
	for symbol, value := range raw {
		var code string
		if err := json.Unmarshal(value, &code); err != nil {
			return fmt.Errorf("%w: code for symbol %q is not a string", ErrMalformedSymbolTable, symbol)
		}
		codes[symbol] = code
	}

	table := SymbolTable{Codes: codes, Padding: padding}
	if err := table.Validate(); err != nil {
		return err
	}
	*t = table
	return nil
}

// WriteTo writes the JSON form of t to w.
func (t SymbolTable) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadSymbolTable parses a symbol table artifact.
func ReadSymbolTable(r io.Reader) (SymbolTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SymbolTable{}, err
	}
	var table SymbolTable
	if err := json.Unmarshal(data, &table); err != nil {
		if errors.Is(err, ErrMalformedSymbolTable) {
			return SymbolTable{}, err
		}
		return SymbolTable{}, fmt.Errorf("%w: %v", ErrMalformedSymbolTable, err)
	}
	return table, nil
}
