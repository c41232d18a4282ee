package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	huffman "github.com/next-exp/huffman_go/pkg"
	"github.com/next-exp/huffman_go/stores"
)

var logger huffman.StdLogger

func init() {
	logger = huffman.NewStdLogger(os.Stdout, os.Stderr)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	store := flag.String("store", "", "Artifact store (files|hdf5|db)")
	output := flag.String("o", "", "Decompressed text output path")
	verbosity := flag.Int("v", -1, "Verbosity level")
	flag.Parse()

	configuration, err := huffman.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *store != "" {
		configuration.Store, err = huffman.ParseStoreKind(*store)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(2)
		}
	}
	if *verbosity >= 0 {
		configuration.Verbosity = *verbosity
	}
	if *output != "" {
		configuration.FileOut = *output
	}
	// any of the artifact paths, or the input text file, identifies the pair
	if flag.NArg() > 0 {
		configuration.Base = huffman.BaseName(flag.Arg(0))
	}
	if configuration.Base == "" && configuration.FileIn != "" {
		configuration.Base = huffman.BaseName(configuration.FileIn)
	}
	if configuration.Base == "" {
		logger.Error("no artifact base given")
		os.Exit(2)
	}
	configuration.Resolve()

	huffman.SetConfiguration(configuration)
	huffman.SetLogger(logger)
	if configuration.Verbosity > 0 {
		huffman.PrintConfiguration(configuration, logger)
	}

	if err := run(configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(configuration huffman.Configuration) error {
	start := time.Now()

	store, base, closeStore, err := stores.Open(configuration)
	if err != nil {
		return err
	}
	defer closeStore()

	text, nSymbols, err := huffman.DecompressFrom(store, base)
	if err != nil {
		return fmt.Errorf("error decompressing %s: %w", base, err)
	}
	if err := huffman.WriteOutput(configuration.FileOut, text); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("done: %d symbols", nSymbols), "main")
	logger.Info(fmt.Sprintf("Decode the compressed file: %d ms", time.Since(start).Milliseconds()), "main")
	return nil
}
