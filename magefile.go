//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles both commands into ./bin
func Build() error {
	mg.Deps(BuildCompress, BuildDecompress)
	fmt.Println("Compilation finished")
	return nil
}

func BuildCompress() error {
	fmt.Println("Building compress executable...")
	return goBuild("./bin/compress", "./compress")
}

func BuildDecompress() error {
	fmt.Println("Building decompress executable...")
	return goBuild("./bin/decompress", "./decompress")
}

// Test runs the unit tests. The HDF5 container needs libhdf5 through cgo.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func goBuild(out string, pkg string) error {
	cmd := exec.Command("go", "build", "-o", out, pkg)
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func cgoEnv() []string {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	return append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
}
