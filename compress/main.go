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
	mode := flag.String("s", "", "Specify character- or word-based Huffman encoding (char|word)")
	store := flag.String("store", "", "Artifact store (files|hdf5|db)")
	verbosity := flag.Int("v", -1, "Verbosity level")
	flag.Parse()

	configuration, err := huffman.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if err := applyFlags(&configuration, *mode, *store, *verbosity, flag.Args()); err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}
	if configuration.FileIn == "" {
		logger.Error("no input file given")
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

func applyFlags(config *huffman.Configuration, mode string, store string, verbosity int, args []string) error {
	if mode != "" {
		m, err := huffman.ParseMode(mode)
		if err != nil {
			return err
		}
		config.Mode = m
	}
	if store != "" {
		s, err := huffman.ParseStoreKind(store)
		if err != nil {
			return err
		}
		config.Store = s
	}
	if verbosity >= 0 {
		config.Verbosity = verbosity
	}
	if len(args) > 0 {
		config.FileIn = args[0]
	}
	return nil
}

func run(configuration huffman.Configuration) error {
	start := time.Now()

	text, err := huffman.ReadInput(configuration.FileIn)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	store, base, closeStore, err := stores.Open(configuration)
	if err != nil {
		return err
	}
	defer closeStore()

	stats, err := huffman.CompressTo(store, base, text, configuration.Mode)
	if err != nil {
		return fmt.Errorf("error compressing %s: %w", configuration.FileIn, err)
	}

	if configuration.Verbosity > 0 {
		logger.Info(stats.String(), "main")
	}
	logger.Info(fmt.Sprintf("Compress time: %d ms", time.Since(start).Milliseconds()), "main")
	return nil
}
