package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is returned when the input text is not valid UTF-8.
	ErrInvalidEncoding = errors.New("huffman: input is not valid UTF-8")
	// ErrCorruptArtifact is returned when the packed stream cannot be walked
	// to completion with the given symbol table.
	ErrCorruptArtifact = errors.New("huffman: corrupt artifact pair")
	// ErrMalformedSymbolTable is returned when a symbol table artifact cannot
	// describe a prefix-free code.
	ErrMalformedSymbolTable = errors.New("huffman: malformed symbol table")
	ErrUnknownMode          = errors.New("huffman: unknown mode")
	ErrUnknownStore         = errors.New("huffman: unknown artifact store")
)

// Stage identifies the step of a run that produced an error.
type Stage int

const (
	StageAnalysis Stage = iota
	StageTreeBuild
	StagePacking
	StagePersistence
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageAnalysis:
		return "analysis"
	case StageTreeBuild:
		return "tree build"
	case StagePacking:
		return "packing"
	case StagePersistence:
		return "persistence"
	case StageDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ErrStage wraps an error with the stage it happened in.
type ErrStage struct {
	Stage Stage
	Err   error
}

func (e *ErrStage) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ErrStage) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *ErrStage
	if errors.As(err, &se) {
		return err
	}
	return &ErrStage{Stage: stage, Err: err}
}

// ErrOpenFile represents an error when opening or reading a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrWriteFile represents an error when writing an artifact file.
type ErrWriteFile struct {
	Filename string
	Err      error
}

func (e *ErrWriteFile) Error() string {
	return fmt.Sprintf("error writing file %q: %v", e.Filename, e.Err)
}

func (e *ErrWriteFile) Unwrap() error {
	return e.Err
}
