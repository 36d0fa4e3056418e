// Package fixture builds the synthetic ONNX model used as test fixture data.
//
// The model declares one int64 input of shape [batch, ?], one float32
// output of shape [batch, ?, vocab] and a single Identity node between
// them. The graph is never executed: consumers only inspect the declared
// names, types and shapes, so the type/shape change across Identity is
// deliberate.
package fixture

import (
	"errors"
	"fmt"
	"slices"

	"github.com/born-ml/born-fixture/internal/logger"
	"github.com/born-ml/born-fixture/internal/onnx"
)

// DefaultPath is where the CLI writes the fixture when no path is given.
const DefaultPath = "model.onnx"

// SuccessMessage is printed after the fixture has been written.
const SuccessMessage = "✅ Test model created for demo purposes"

// ErrMismatch is returned by Verify when a file does not match the fixture.
var ErrMismatch = errors.New("fixture mismatch")

// Config describes the fixture model.
type Config struct {
	InputName  string
	OutputName string
	NodeName   string
	GraphName  string
	OpType     string

	// BatchSize is the fixed leading dimension of both tensors.
	BatchSize int64
	// VocabSize is the fixed trailing dimension of the output.
	VocabSize int64

	// Model metadata.
	Model onnx.ModelOptions
}

// DefaultConfig returns the standard fixture: GPT-2 style input_ids to
// logits with a 50257-entry vocabulary.
func DefaultConfig() Config {
	return Config{
		InputName:  "input_ids",
		OutputName: "logits",
		NodeName:   "test_node",
		GraphName:  "test_model",
		OpType:     "Identity",
		BatchSize:  1,
		VocabSize:  50257,
		Model:      onnx.DefaultModelOptions(),
	}
}

// Build constructs the fixture model described by cfg.
func Build(cfg Config) (*onnx.ModelProto, error) {
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.VocabSize <= 0 {
		return nil, fmt.Errorf("vocab size must be positive, got %d", cfg.VocabSize)
	}

	input := onnx.MakeTensorValueInfo(cfg.InputName, onnx.TensorProtoInt64,
		onnx.Fixed(cfg.BatchSize), onnx.Unbound())
	output := onnx.MakeTensorValueInfo(cfg.OutputName, onnx.TensorProtoFloat,
		onnx.Fixed(cfg.BatchSize), onnx.Unbound(), onnx.Fixed(cfg.VocabSize))
	node := onnx.MakeNode(cfg.OpType, []string{cfg.InputName}, []string{cfg.OutputName}, cfg.NodeName)

	graph := onnx.MakeGraph(
		[]onnx.NodeProto{node},
		cfg.GraphName,
		[]onnx.ValueInfoProto{input},
		[]onnx.ValueInfoProto{output},
	)
	model := onnx.MakeModel(graph, cfg.Model)

	if err := onnx.Check(model); err != nil {
		return nil, err
	}
	return model, nil
}

// BuildAndSave builds the fixture and writes it to path. Without cfg the
// default fixture is written.
func BuildAndSave(path string, cfg ...Config) error {
	c := DefaultConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}

	model, err := Build(c)
	if err != nil {
		return fmt.Errorf("failed to build fixture: %w", err)
	}
	logger.Log.Debug("built fixture",
		"graph", model.Graph.Name,
		"nodes", len(model.Graph.Nodes),
		"input", onnx.DescribeValue(&model.Graph.Inputs[0]),
		"output", onnx.DescribeValue(&model.Graph.Outputs[0]),
	)

	if err := onnx.Save(model, path); err != nil {
		return fmt.Errorf("failed to save fixture: %w", err)
	}
	logger.Log.Info("wrote fixture", "path", path)
	return nil
}

// Verify parses the file at path and checks that it declares the fixture
// described by cfg. Raw bytes are not compared.
func Verify(path string, cfg Config) error {
	model, err := onnx.ParseFile(path)
	if err != nil {
		return err
	}
	return VerifyModel(model, cfg)
}

// VerifyModel checks a parsed model against cfg.
//
//nolint:gocyclo,cyclop // One branch per checked property.
func VerifyModel(model *onnx.ModelProto, cfg Config) error {
	if model == nil {
		return fmt.Errorf("%w: no model", ErrMismatch)
	}
	g := model.Graph
	if g == nil {
		return fmt.Errorf("%w: model has no graph", ErrMismatch)
	}
	if g.Name != cfg.GraphName {
		return fmt.Errorf("%w: graph name %q, want %q", ErrMismatch, g.Name, cfg.GraphName)
	}
	if len(g.Nodes) != 1 {
		return fmt.Errorf("%w: %d nodes, want 1", ErrMismatch, len(g.Nodes))
	}

	node := &g.Nodes[0]
	if node.OpType != cfg.OpType {
		return fmt.Errorf("%w: node op %q, want %q", ErrMismatch, node.OpType, cfg.OpType)
	}
	if node.Name != cfg.NodeName {
		return fmt.Errorf("%w: node name %q, want %q", ErrMismatch, node.Name, cfg.NodeName)
	}
	if !slices.Equal(node.Inputs, []string{cfg.InputName}) || !slices.Equal(node.Outputs, []string{cfg.OutputName}) {
		return fmt.Errorf("%w: node wiring %v -> %v", ErrMismatch, node.Inputs, node.Outputs)
	}

	if len(g.Inputs) != 1 || len(g.Outputs) != 1 {
		return fmt.Errorf("%w: %d inputs and %d outputs, want 1 and 1", ErrMismatch, len(g.Inputs), len(g.Outputs))
	}
	wantIn := []onnx.DimensionProto{onnx.Fixed(cfg.BatchSize), onnx.Unbound()}
	if err := verifyValue(&g.Inputs[0], cfg.InputName, onnx.TensorProtoInt64, wantIn); err != nil {
		return err
	}
	wantOut := []onnx.DimensionProto{onnx.Fixed(cfg.BatchSize), onnx.Unbound(), onnx.Fixed(cfg.VocabSize)}
	return verifyValue(&g.Outputs[0], cfg.OutputName, onnx.TensorProtoFloat, wantOut)
}

func verifyValue(vi *onnx.ValueInfoProto, name string, elemType int32, dims []onnx.DimensionProto) error {
	if vi.Name != name {
		return fmt.Errorf("%w: value %q, want %q", ErrMismatch, vi.Name, name)
	}
	if vi.Type == nil || vi.Type.TensorType == nil {
		return fmt.Errorf("%w: %q has no tensor type", ErrMismatch, name)
	}
	tt := vi.Type.TensorType
	if tt.ElemType != elemType {
		return fmt.Errorf("%w: %q has type %s, want %s", ErrMismatch, name,
			onnx.ElemTypeName(tt.ElemType), onnx.ElemTypeName(elemType))
	}
	want := &onnx.TensorShapeProto{Dims: dims}
	if tt.Shape == nil || !slices.Equal(tt.Shape.Dims, dims) {
		return fmt.Errorf("%w: %q has shape %s, want %s", ErrMismatch, name,
			onnx.FormatShape(tt.Shape), onnx.FormatShape(want))
	}
	return nil
}
