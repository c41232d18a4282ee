package huffman

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Configuration struct {
	Verbosity int       `json:"verbosity"`
	Mode      Mode      `json:"mode"`
	FileIn    string    `json:"file_in"`
	Base      string    `json:"base"`
	FileOut   string    `json:"file_out"`
	Store     StoreKind `json:"store"`
	Host      string    `json:"host"`
	User      string    `json:"user"`
	Passwd    string    `json:"pass"`
	DBName    string    `json:"dbname"`
	Model     string    `json:"model"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// DefaultConfiguration returns the settings used when no file is given.
func DefaultConfiguration() Configuration {
	return Configuration{
		Verbosity: 0,
		Mode:      CharMode,
		Store:     FilesStore,
		Host:      "localhost",
		User:      "huffman",
		Passwd:    "huffman",
		DBName:    "HUFFMAN",
	}
}

// LoadConfiguration overlays the JSON file on top of the defaults. An empty
// filename returns the defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, &ErrOpenFile{Filename: filename, Err: err}
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("error parsing configuration %q: %w", filename, err)
	}
	return config, nil
}

// Resolve fills the derived paths. Base defaults to the input path without
// its extension, the output to "<base>-decompressed.txt" and the DB model
// name to the base file name.
func (c *Configuration) Resolve() {
	if c.Base == "" && c.FileIn != "" {
		c.Base = BaseName(c.FileIn)
	}
	if c.FileOut == "" && c.Base != "" {
		c.FileOut = c.Base + "-decompressed.txt"
	}
	if c.Model == "" && c.Base != "" {
		c.Model = filepath.Base(c.Base)
	}
}

// BaseName strips the extension of path, and the "-symbol-model" suffix
// when path points at a symbol table artifact.
func BaseName(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.TrimSuffix(base, symbolModelSuffix)
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Base: %s", config.Base), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Mode: %s", config.Mode), "config")
	logger.Info(fmt.Sprintf("Store: %s", config.Store), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	if config.Store == DatabaseStore {
		logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
		logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
		logger.Info(fmt.Sprintf("Model: %s", config.Model), "config")
	}
}

// StoreKind selects where an artifact pair is persisted.
type StoreKind int

const (
	FilesStore StoreKind = iota
	HDF5Store
	DatabaseStore
)

var storeKindStrings = []string{
	"files",
	"hdf5",
	"db",
}

func (s StoreKind) String() string {
	if s < FilesStore || s > DatabaseStore {
		return "UNKNOWN"
	}
	return storeKindStrings[s]
}

func ParseStoreKind(s string) (StoreKind, error) {
	for i, v := range storeKindStrings {
		if v == s {
			return StoreKind(i), nil
		}
	}
	return FilesStore, fmt.Errorf("%w: %s", ErrUnknownStore, s)
}

func (s StoreKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StoreKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	kind, err := ParseStoreKind(str)
	if err != nil {
		return err
	}
	*s = kind
	return nil
}
