// Package main provides the born-fixture CLI, which writes the synthetic
// ONNX model used by downstream tests.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewCLI(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
