package huffman

import (
	"bytes"
	"errors"
	"testing"
)

func TestDatabaseDSN(t *testing.T) {
	got := DatabaseDSN("huffman", "secret", "db.local", "HUFFMAN")
	want := "huffman:secret@tcp(db.local:3306)/HUFFMAN?parseTime=true"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArtifactsRows(t *testing.T) {
	artifacts, _, err := Compress("abracadabra", CharMode)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	modelRow, codeRows := artifactsToRows("abra", artifacts)
	if modelRow.Model != "abra" || modelRow.Padding != artifacts.Table.Padding {
		t.Fatalf("model row %+v", modelRow)
	}
	if len(codeRows) != len(artifacts.Table.Codes) {
		t.Fatalf("%d code rows for %d codes", len(codeRows), len(artifacts.Table.Codes))
	}
	got, err := rowsToArtifacts(modelRow, codeRows)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if !got.Table.Equal(artifacts.Table) || !bytes.Equal(got.Packed, artifacts.Packed) {
		t.Fatalf("got %+v, want %+v", got, artifacts)
	}
}

func TestArtifactsRowsEmpty(t *testing.T) {
	modelRow, codeRows := artifactsToRows("empty", Artifacts{Table: SymbolTable{Codes: CodeTable{}}})
	if modelRow.Packed == nil || len(codeRows) != 0 {
		t.Fatalf("model row %+v, code rows %v", modelRow, codeRows)
	}
	got, err := rowsToArtifacts(modelRow, codeRows)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(got.Packed) != 0 || len(got.Table.Codes) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestRowsToArtifactsInvalid(t *testing.T) {
	modelRow := SymbolModelEntry{Model: "m", Padding: 1, Packed: []byte{0x00}}
	tests := []struct {
		name  string
		model SymbolModelEntry
		codes []SymbolCodeEntry
	}{
		{"other model", modelRow, []SymbolCodeEntry{{Model: "n", Symbol: "a", Code: "0"}}},
		{"duplicated symbol", modelRow, []SymbolCodeEntry{{Model: "m", Symbol: "a", Code: "0"}, {Model: "m", Symbol: "a", Code: "1"}}},
		{"prefix conflict", modelRow, []SymbolCodeEntry{{Model: "m", Symbol: "a", Code: "0"}, {Model: "m", Symbol: "b", Code: "00"}}},
		{"bad padding", SymbolModelEntry{Model: "m", Padding: 8}, []SymbolCodeEntry{{Model: "m", Symbol: "a", Code: "0"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rowsToArtifacts(tt.model, tt.codes); !errors.Is(err, ErrMalformedSymbolTable) {
				t.Fatalf("expected ErrMalformedSymbolTable, got %v", err)
			}
		})
	}
}
