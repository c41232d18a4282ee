// Package stores opens the artifact store selected in the configuration.
package stores

import (
	"fmt"

	"github.com/next-exp/huffman_go/container"
	huffman "github.com/next-exp/huffman_go/pkg"
)

// Open returns the store for config.Store, the base reference to use with
// it and a function releasing its resources.
func Open(config huffman.Configuration) (huffman.ArtifactStore, string, func() error, error) {
	noop := func() error { return nil }
	switch config.Store {
	case huffman.FilesStore:
		return huffman.FileStore{}, config.Base, noop, nil
	case huffman.HDF5Store:
		return container.Store{}, config.Base, noop, nil
	case huffman.DatabaseStore:
		dbConn, err := huffman.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
		if err != nil {
			return nil, "", noop, fmt.Errorf("error connecting to database: %w", err)
		}
		store, err := huffman.NewDBStore(dbConn)
		if err != nil {
			dbConn.Close()
			return nil, "", noop, err
		}
		return store, config.Model, dbConn.Close, nil
	default:
		return nil, "", noop, fmt.Errorf("%w: %s", huffman.ErrUnknownStore, config.Store)
	}
}
