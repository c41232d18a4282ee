package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

var randomAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 \n\t.,;:!?'\"()-_éü世")

// randomText builds a deterministic text mixing letters, digits,
// punctuation and whitespace, with a skewed distribution.
func randomText(n int, seed int64) string {
	r := rand.New(rand.NewSource(seed))
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx := r.Intn(len(randomAlphabet))
		if r.Intn(3) > 0 {
			idx = r.Intn(8)
		}
		sb.WriteRune(randomAlphabet[idx])
	}
	return sb.String()
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"single repeated char", strings.Repeat("z", 1000)},
		{"one distinct word", "hello"},
		{"repeated word", strings.Repeat("hello", 50)},
		{"aaab", "aaab"},
		{"mixed", "Hello, World! It's 2024 -- isn't it?\n\tYes: (really) \"quoted\"."},
		{"unicode", "naïve café, 世界 and emoji 🚀🚀🚀"},
		{"only punctuation", "!!!???...,,,"},
		{"random", randomText(5000, 42)},
	}
	for _, tt := range tests {
		for _, mode := range []Mode{CharMode, WordMode} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				artifacts, stats, err := Compress(tt.text, mode)
				if err != nil {
					t.Fatalf("compress: %v", err)
				}
				got, n, err := Decompress(artifacts)
				if err != nil {
					t.Fatalf("decompress: %v", err)
				}
				if got != tt.text {
					t.Fatalf("round trip mismatch: got %q, want %q", got, tt.text)
				}
				if n != stats.Symbols {
					t.Fatalf("decoded %d symbols, encoded %d", n, stats.Symbols)
				}
			})
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	for seed := int64(100); seed < 150; seed++ {
		text := randomText(int(seed%17)*31+1, seed)
		for _, mode := range []Mode{CharMode, WordMode} {
			artifacts, _, err := Compress(text, mode)
			if err != nil {
				t.Fatalf("seed %d: compress: %v", seed, err)
			}
			got, _, err := Decompress(artifacts)
			if err != nil {
				t.Fatalf("seed %d: decompress: %v", seed, err)
			}
			if got != text {
				t.Fatalf("seed %d %s: round trip mismatch", seed, mode)
			}
		}
	}
}

func TestCompressAAAB(t *testing.T) {
	artifacts, stats, err := Compress("aaab", CharMode)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	codes := artifacts.Table.Codes
	if len(codes) != 2 || len(codes["a"]) != 1 || len(codes["b"]) != 1 {
		t.Fatalf("codes %v, want two 1-bit codes", codes)
	}
	// b is lighter so it is the '0' branch: 1110 + 0000
	if !bytes.Equal(artifacts.Packed, []byte{0xE0}) {
		t.Fatalf("packed %08b, want 11100000", artifacts.Packed)
	}
	if artifacts.Table.Padding != 4 {
		t.Fatalf("padding %d, want 4", artifacts.Table.Padding)
	}
	if stats.Symbols != 4 || stats.Distinct != 2 || stats.Bits != 4 || stats.Bytes != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	text, n, err := Decompress(artifacts)
	if err != nil || text != "aaab" || n != 4 {
		t.Fatalf("decompress got %q, %d, %v", text, n, err)
	}
}

func TestCompressEmpty(t *testing.T) {
	artifacts, stats, err := Compress("", WordMode)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if len(artifacts.Packed) != 0 || len(artifacts.Table.Codes) != 0 || artifacts.Table.Padding != 0 {
		t.Fatalf("expected empty artifacts, got %+v", artifacts)
	}
	if stats.Symbols != 0 {
		t.Fatalf("expected zero symbols, got %d", stats.Symbols)
	}
	text, n, err := Decompress(artifacts)
	if err != nil || text != "" || n != 0 {
		t.Fatalf("decompress got %q, %d, %v", text, n, err)
	}
}

func TestCompressSingleSymbol(t *testing.T) {
	artifacts, _, err := Compress("xxxxxxxxx", CharMode)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	code := artifacts.Table.Codes["x"]
	if len(code) < 1 {
		t.Fatalf("single symbol must get a non-empty code")
	}
	// 9 bits -> 2 bytes, 7 padding bits
	if len(artifacts.Packed) != 2 || artifacts.Table.Padding != 7 {
		t.Fatalf("packed %d bytes with padding %d", len(artifacts.Packed), artifacts.Table.Padding)
	}
}

func TestCompressStageErrors(t *testing.T) {
	_, _, err := Compress("bad \xfe input", CharMode)
	var se *ErrStage
	if !errors.As(err, &se) || se.Stage != StageAnalysis {
		t.Fatalf("expected analysis stage error, got %v", err)
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}

	_, _, err = Decompress(Artifacts{Table: SymbolTable{Codes: CodeTable{"a": "0", "b": "1"}, Padding: 7}, Packed: []byte{0x81}})
	if !errors.As(err, &se) || se.Stage != StageDecode {
		t.Fatalf("expected decode stage error, got %v", err)
	}
}

type failingStore struct {
	saved int
}

func (s *failingStore) Save(string, Artifacts) error {
	s.saved++
	return errors.New("disk full")
}

func (s *failingStore) Load(string) (Artifacts, error) {
	return Artifacts{}, errors.New("no such model")
}

func TestStoreErrorsArePersistenceStage(t *testing.T) {
	store := &failingStore{}
	_, err := CompressTo(store, "x", "abc", CharMode)
	var se *ErrStage
	if !errors.As(err, &se) || se.Stage != StagePersistence {
		t.Fatalf("expected persistence stage error, got %v", err)
	}

	_, err = CompressTo(store, "x", "\xff", CharMode)
	if store.saved != 1 {
		t.Fatalf("store must not be called when encoding fails")
	}
	if !errors.As(err, &se) || se.Stage != StageAnalysis {
		t.Fatalf("expected analysis stage error, got %v", err)
	}

	_, _, err = DecompressFrom(store, "x")
	if !errors.As(err, &se) || se.Stage != StagePersistence {
		t.Fatalf("expected persistence stage error, got %v", err)
	}
}

func BenchmarkCompress(b *testing.B) {
	text := randomText(1<<16, 9)
	for _, mode := range []Mode{CharMode, WordMode} {
		b.Run(mode.String(), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := Compress(text, mode); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	text := randomText(1<<16, 9)
	artifacts, _, err := Compress(text, WordMode)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Decompress(artifacts); err != nil {
			b.Fatal(err)
		}
	}
}
