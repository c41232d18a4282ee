package container

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	huffman "github.com/next-exp/huffman_go/pkg"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	texts := map[string]string{
		"empty":  "",
		"single": "zzzz",
		"prose":  "Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse.",
	}
	for name, text := range texts {
		base := filepath.Join(dir, name)
		artifacts, _, err := huffman.Compress(text, huffman.WordMode)
		if err != nil {
			t.Fatalf("%s: compress: %v", name, err)
		}
		if err := (Store{}).Save(base, artifacts); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		if _, err := os.Stat(Path(base)); err != nil {
			t.Fatalf("%s: container not written: %v", name, err)
		}
		got, err := Store{}.Load(base)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if !got.Table.Equal(artifacts.Table) || !bytes.Equal(got.Packed, artifacts.Packed) {
			t.Fatalf("%s: got %+v, want %+v", name, got, artifacts)
		}
		decoded, _, err := huffman.Decompress(got)
		if err != nil || decoded != text {
			t.Fatalf("%s: decompress got %q, %v", name, decoded, err)
		}
	}
}

func TestStoreOverwrite(t *testing.T) {
	base := filepath.Join(t.TempDir(), "model")
	for _, text := range []string{"first text, rather long", "second"} {
		if _, err := huffman.CompressTo(Store{}, base, text, huffman.CharMode); err != nil {
			t.Fatalf("compress: %v", err)
		}
	}
	got, _, err := huffman.DecompressFrom(Store{}, base)
	if err != nil || got != "second" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestStoreMissing(t *testing.T) {
	_, err := Store{}.Load(filepath.Join(t.TempDir(), "nothing"))
	var openErr *huffman.ErrOpenFile
	if !errors.As(err, &openErr) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
}

func TestPath(t *testing.T) {
	if got := Path("data/book"); got != "data/book.h5" {
		t.Fatalf("got %q", got)
	}
	if huffman.BaseName(Path("data/book")) != "data/book" {
		t.Fatalf("BaseName must strip the container extension")
	}
}
