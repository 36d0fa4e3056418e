// Package onnx is the public entry point for the born-fixture ONNX tooling.
//
// Downstream test suites use it to produce the synthetic fixture model on
// the fly, or to inspect ONNX files they receive.
//
// # Example Usage
//
//	import "github.com/born-ml/born-fixture/onnx"
//
//	// Write the fixture into a test's temp directory
//	path := filepath.Join(t.TempDir(), "model.onnx")
//	if err := onnx.WriteTestModel(path); err != nil {
//	    t.Fatal(err)
//	}
//
//	// Inspect it
//	info, err := onnx.GetModelInfo(path)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	fmt.Println("Inputs:", info.InputNames)   // [input_ids]
//	fmt.Println("Outputs:", info.OutputNames) // [logits]
package onnx

import (
	"github.com/born-ml/born-fixture/internal/fixture"
	internalonnx "github.com/born-ml/born-fixture/internal/onnx"
)

// ModelProto is a decoded ONNX model.
type ModelProto = internalonnx.ModelProto

// ModelInfo contains metadata about an ONNX model.
//
// Use [GetModelInfo] to quickly inspect a model file.
type ModelInfo = internalonnx.ModelInfo

// FixtureConfig describes the synthetic fixture model.
type FixtureConfig = fixture.Config

// DefaultFixtureConfig returns the standard fixture: an int64 input_ids
// tensor of shape [1, ?] passed through Identity to a float32 logits
// tensor of shape [1, ?, 50257].
func DefaultFixtureConfig() FixtureConfig {
	return fixture.DefaultConfig()
}

// WriteTestModel writes the fixture model to path.
//
// Optionally pass a FixtureConfig to change names or dimensions:
//
//	cfg := onnx.DefaultFixtureConfig()
//	cfg.VocabSize = 32000
//	err := onnx.WriteTestModel(path, cfg)
func WriteTestModel(path string, cfg ...FixtureConfig) error {
	return fixture.BuildAndSave(path, cfg...)
}

// VerifyTestModel checks that the file at path declares the fixture
// described by cfg.
func VerifyTestModel(path string, cfg FixtureConfig) error {
	return fixture.Verify(path, cfg)
}

// ParseFile decodes an ONNX model file.
func ParseFile(path string) (*ModelProto, error) {
	return internalonnx.ParseFile(path)
}

// Parse decodes an ONNX model from raw bytes.
func Parse(data []byte) (*ModelProto, error) {
	return internalonnx.Parse(data)
}

// Save validates and writes model to path atomically.
func Save(model *ModelProto, path string) error {
	return internalonnx.Save(model, path)
}

// GetModelInfo extracts metadata from an ONNX file.
//
// Example:
//
//	info, err := onnx.GetModelInfo("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Producer: %s\n", info.ProducerName)
//	fmt.Printf("Opset: %d\n", info.OpsetVersion)
//	fmt.Printf("Operators: %v\n", info.Operators)
func GetModelInfo(path string) (*ModelInfo, error) {
	return internalonnx.GetModelInfo(path)
}

// ListSupportedOps returns the operators whose input/output counts are
// validated before saving.
func ListSupportedOps() []string {
	return internalonnx.ListSupportedOps()
}
