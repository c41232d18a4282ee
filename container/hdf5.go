package container

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

const chunkSize = 32768

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// createByteTable creates an empty, extendible, deflated uint8 dataset.
func createByteTable(group *hdf5.Group, name string) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()
	if err := plist.SetChunk([]uint{chunkSize}); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if err := plist.SetDeflate(4); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_UINT8, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// appendBytes extends dataset by len(data) and writes data at the end.
func appendBytes(dataset *hdf5.Dataset, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	length := uint(len(data))
	memSpace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return err
	}
	defer memSpace.Close()

	current := dataset.Space()
	dims, _, err := current.SimpleExtentDims()
	current.Close()
	if err != nil {
		return err
	}
	inFile := dims[0]
	if err := dataset.Resize([]uint{inFile + length}); err != nil {
		return err
	}
	fileSpace := dataset.Space()
	defer fileSpace.Close()
	if err := fileSpace.SelectHyperslab([]uint{inFile}, nil, []uint{length}, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(&data, memSpace, fileSpace)
}

func readBytes(group *hdf5.Group, name string) ([]byte, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions of %q: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("dataset %q has %d dimensions, want 1", name, len(dims))
	}

	data := make([]byte, dims[0])
	if len(data) == 0 {
		return data, nil
	}
	if err := dset.Read(&data); err != nil {
		return nil, fmt.Errorf("error reading dataset %q: %w", name, err)
	}
	return data, nil
}
