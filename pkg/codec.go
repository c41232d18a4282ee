package huffman

import (
	"fmt"
	"strings"
	"time"
)

// Artifacts is the matched pair produced by Compress and consumed by
// Decompress. Both halves are always stored and loaded together.
type Artifacts struct {
	Table  SymbolTable
	Packed []byte
}

// Bits is the number of meaningful bits in the packed stream.
func (a Artifacts) Bits() int {
	return len(a.Packed)*8 - a.Table.Padding
}

// ArtifactStore persists artifact pairs under a base reference.
type ArtifactStore interface {
	Save(base string, artifacts Artifacts) error
	Load(base string) (Artifacts, error)
}

// Stats summarizes a compression run.
type Stats struct {
	Symbols  int
	Distinct int
	Bits     int
	Bytes    int
	Padding  int
	InBytes  int
	ModelMs  int64
	EncodeMs int64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d symbols (%d distinct), %d bytes in, %d bits / %d bytes out, padding %d",
		s.Symbols, s.Distinct, s.InBytes, s.Bits, s.Bytes, s.Padding)
}

// Compress runs analysis, tree build, code assignment and packing over text.
func Compress(text string, mode Mode) (Artifacts, Stats, error) {
	startModel := time.Now()
	stream, freqs, err := Analyze(text, mode)
	if err != nil {
		return Artifacts{}, Stats{}, stageError(StageAnalysis, err)
	}

	root, err := BuildTree(freqs)
	if err != nil {
		return Artifacts{}, Stats{}, stageError(StageTreeBuild, err)
	}
	codes := AssignCodes(root)
	modelMs := time.Since(startModel).Milliseconds()
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Build the symbol model: %d ms", modelMs), "codec")
	}

	startEncode := time.Now()
	packed, padding, err := Pack(stream, codes)
	if err != nil {
		return Artifacts{}, Stats{}, stageError(StagePacking, err)
	}
	encodeMs := time.Since(startEncode).Milliseconds()
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Encode the symbol model: %d ms", encodeMs), "codec")
	}

	artifacts := Artifacts{
		Table:  SymbolTable{Codes: codes, Padding: padding},
		Packed: packed,
	}
	stats := Stats{
		Symbols:  len(stream),
		Distinct: freqs.Len(),
		Bits:     artifacts.Bits(),
		Bytes:    len(packed),
		Padding:  padding,
		InBytes:  len(text),
		ModelMs:  modelMs,
		EncodeMs: encodeMs,
	}
	return artifacts, stats, nil
}

// Decompress recovers the text and the number of decoded symbols.
func Decompress(artifacts Artifacts) (string, int, error) {
	start := time.Now()
	symbols, err := Decode(artifacts.Table, artifacts.Packed)
	if err != nil {
		return "", 0, stageError(StageDecode, err)
	}
	text := strings.Join(symbols, "")
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Decode the compressed data: %d ms", time.Since(start).Milliseconds())
		logger.Info(message, "codec")
	}
	return text, len(symbols), nil
}

// CompressTo compresses text and saves the pair in store. Nothing is
// written if any encoding stage fails.
func CompressTo(store ArtifactStore, base string, text string, mode Mode) (Stats, error) {
	artifacts, stats, err := Compress(text, mode)
	if err != nil {
		return stats, err
	}
	if err := store.Save(base, artifacts); err != nil {
		return stats, stageError(StagePersistence, err)
	}
	return stats, nil
}

// DecompressFrom loads the pair saved under base and decodes it.
func DecompressFrom(store ArtifactStore, base string) (string, int, error) {
	artifacts, err := store.Load(base)
	if err != nil {
		return "", 0, stageError(StagePersistence, err)
	}
	return Decompress(artifacts)
}
