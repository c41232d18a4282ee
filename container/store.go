// Package container stores a matched artifact pair in a single HDF5 file,
// so the symbol table and the packed stream cannot be mixed up.
//
// Layout of "<base>.h5":
//
//	/Model/symbol_table  uint8  JSON symbol table (codes + padding_length)
//	/Model/packed        uint8  packed stream
package container

import (
	"bytes"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	huffman "github.com/next-exp/huffman_go/pkg"
)

const (
	Extension       = ".h5"
	modelGroup      = "Model"
	symbolTableName = "symbol_table"
	packedName      = "packed"
)

// Path returns the container file used for base.
func Path(base string) string {
	return base + Extension
}

// Store implements huffman.ArtifactStore on top of HDF5 files.
type Store struct{}

func (Store) Save(base string, artifacts huffman.Artifacts) error {
	var table bytes.Buffer
	if _, err := artifacts.Table.WriteTo(&table); err != nil {
		return fmt.Errorf("error serializing symbol table: %w", err)
	}

	filename := Path(base)
	file, err := hdf5.CreateFile(filename, hdf5.F_ACC_TRUNC)
	if err != nil {
		return &huffman.ErrWriteFile{Filename: filename, Err: err}
	}
	defer file.Close()

	group, err := createGroup(file, modelGroup)
	if err != nil {
		return err
	}
	defer group.Close()

	tableSet, err := createByteTable(group, symbolTableName)
	if err != nil {
		return err
	}
	defer tableSet.Close()
	if err := appendBytes(tableSet, table.Bytes()); err != nil {
		return &huffman.ErrWriteFile{Filename: filename, Err: err}
	}

	packedSet, err := createByteTable(group, packedName)
	if err != nil {
		return err
	}
	defer packedSet.Close()
	if err := appendBytes(packedSet, artifacts.Packed); err != nil {
		return &huffman.ErrWriteFile{Filename: filename, Err: err}
	}
	return nil
}

func (Store) Load(base string) (huffman.Artifacts, error) {
	filename := Path(base)
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return huffman.Artifacts{}, &huffman.ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	group, err := file.OpenGroup(modelGroup)
	if err != nil {
		return huffman.Artifacts{}, &ErrCreateGroup{GroupName: modelGroup, Err: err}
	}
	defer group.Close()

	tableData, err := readBytes(group, symbolTableName)
	if err != nil {
		return huffman.Artifacts{}, err
	}
	table, err := huffman.ReadSymbolTable(bytes.NewReader(tableData))
	if err != nil {
		return huffman.Artifacts{}, fmt.Errorf("error reading symbol table from %q: %w", filename, err)
	}

	packed, err := readBytes(group, packedName)
	if err != nil {
		return huffman.Artifacts{}, err
	}
	return huffman.Artifacts{Table: table, Packed: packed}, nil
}
