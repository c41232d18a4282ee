package huffman

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

const (
	packedExt         = ".bin"
	symbolModelSuffix = "-symbol-model"
	symbolModelExt    = ".json"
)

// ArtifactPaths returns the packed stream and symbol table paths for base.
func ArtifactPaths(base string) (packed string, model string) {
	return base + packedExt, base + symbolModelSuffix + symbolModelExt
}

// FileStore keeps each artifact pair as "<base>.bin" and
// "<base>-symbol-model.json".
type FileStore struct{}

func (FileStore) Save(base string, artifacts Artifacts) error {
	packedPath, modelPath := ArtifactPaths(base)

	var model bytes.Buffer
	if _, err := artifacts.Table.WriteTo(&model); err != nil {
		return fmt.Errorf("error serializing symbol table: %w", err)
	}

	// both artifacts go to temporary files first so a failure leaves no
	// half-written pair behind
	packedTmp, err := writeTemp(packedPath, artifacts.Packed)
	if err != nil {
		return err
	}
	modelTmp, err := writeTemp(modelPath, model.Bytes())
	if err != nil {
		os.Remove(packedTmp)
		return err
	}
	if err := os.Rename(packedTmp, packedPath); err != nil {
		os.Remove(packedTmp)
		os.Remove(modelTmp)
		return &ErrWriteFile{Filename: packedPath, Err: err}
	}
	if err := os.Rename(modelTmp, modelPath); err != nil {
		// the new stream must not stay next to an older symbol table
		os.Remove(packedPath)
		os.Remove(modelTmp)
		return &ErrWriteFile{Filename: modelPath, Err: err}
	}

	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Artifacts written: %s, %s", packedPath, modelPath), "files")
	}
	return nil
}

func (FileStore) Load(base string) (Artifacts, error) {
	packedPath, modelPath := ArtifactPaths(base)

	modelFile, err := os.Open(modelPath)
	if err != nil {
		return Artifacts{}, &ErrOpenFile{Filename: modelPath, Err: err}
	}
	defer modelFile.Close()
	table, err := ReadSymbolTable(modelFile)
	if err != nil {
		return Artifacts{}, fmt.Errorf("error reading symbol table %q: %w", modelPath, err)
	}

	packed, err := os.ReadFile(packedPath)
	if err != nil {
		return Artifacts{}, &ErrOpenFile{Filename: packedPath, Err: err}
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Artifacts read: %s (%d bytes), %s (%d codes)", packedPath, len(packed), modelPath, len(table.Codes))
		logger.Info(message, "files")
	}
	return Artifacts{Table: table, Packed: packed}, nil
}

func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return "", &ErrWriteFile{Filename: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", &ErrWriteFile{Filename: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", &ErrWriteFile{Filename: path, Err: err}
	}
	return f.Name(), nil
}

// ReadInput reads a whole text file, rejecting invalid UTF-8.
func ReadInput(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", &ErrOpenFile{Filename: filename, Err: err}
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%q: %w", filename, ErrInvalidEncoding)
	}
	return string(data), nil
}

// WriteOutput writes the decoded text.
func WriteOutput(filename string, text string) error {
	if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
		return &ErrWriteFile{Filename: filename, Err: err}
	}
	return nil
}
