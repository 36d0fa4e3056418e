package onnx

import (
	"fmt"

	"github.com/born-ml/born-fixture/internal/onnx/operators"
)

// defaultOps holds the arity schemas of default-domain operators.
var defaultOps = operators.NewRegistry()

// Check validates the structure of model before it is serialized.
//
// It checks the input/output counts of known default-domain operators and
// verifies that every tensor a node consumes was declared as a graph
// input or initializer, or produced by an earlier node, and that every
// graph output is produced. Checks are structural only: operator semantics
// (for example, that Identity preserves type and shape) are not enforced.
func Check(model *ModelProto) error {
	if model == nil {
		return ErrNilModel
	}
	if model.Graph == nil {
		return &ValidationError{Type: "missing_graph", Details: "model has no graph"}
	}
	for i, opset := range model.OpsetImport {
		if opset.Version <= 0 {
			return &ValidationError{
				Type:    "opset",
				Path:    fmt.Sprintf("opset_import[%d]", i),
				Details: fmt.Sprintf("invalid version %d", opset.Version),
			}
		}
	}
	return checkGraph(model.Graph, "graph")
}

//nolint:gocognit,gocyclo,cyclop // Graph validation walks every declared and produced name.
func checkGraph(g *GraphProto, path string) error {
	available := make(map[string]bool)

	for i := range g.Inputs {
		vi := &g.Inputs[i]
		at := fmt.Sprintf("%s.input[%d]", path, i)
		if err := checkValueInfo(vi, at); err != nil {
			return err
		}
		available[vi.Name] = true
	}

	for i := range g.Initializers {
		init := &g.Initializers[i]
		at := fmt.Sprintf("%s.initializer[%d]", path, i)
		if init.Name == "" {
			return &ValidationError{Type: "empty_name", Path: at, Details: "initializer has no name"}
		}
		if !validElemType(init.DataType) {
			return &ValidationError{Type: "elem_type", Path: at, Details: fmt.Sprintf("unknown data type %d", init.DataType)}
		}
		for _, d := range init.Dims {
			if d < 0 {
				return &ValidationError{Type: "shape", Path: at, Details: fmt.Sprintf("negative dimension %d", d)}
			}
		}
		available[init.Name] = true
	}

	produced := make(map[string]string)
	for i := range g.Nodes {
		node := &g.Nodes[i]
		at := fmt.Sprintf("%s.node[%d]", path, i)
		if node.Name != "" {
			at = fmt.Sprintf("%s.node[%s]", path, node.Name)
		}

		if node.OpType == "" {
			return &ValidationError{Type: "op_type", Path: at, Details: "node has no op_type"}
		}
		if node.Domain == "" || node.Domain == "ai.onnx" {
			if err := defaultOps.CheckArity(node.OpType, len(node.Inputs), len(node.Outputs)); err != nil {
				return &ValidationError{Type: "arity", Path: at, Details: err.Error()}
			}
		}
		for _, in := range node.Inputs {
			// An empty name marks an omitted optional input.
			if in != "" && !available[in] {
				return &ValidationError{
					Type:    "dangling_input",
					Path:    at,
					Details: fmt.Sprintf("input %q is not a graph input, initializer, or output of an earlier node", in),
				}
			}
		}
		for _, out := range node.Outputs {
			if out == "" {
				continue
			}
			if prev, ok := produced[out]; ok {
				return &ValidationError{
					Type:    "duplicate_output",
					Path:    at,
					Details: fmt.Sprintf("output %q already produced by %s", out, prev),
				}
			}
			produced[out] = at
			available[out] = true
		}
		for j := range node.Attributes {
			if node.Attributes[j].Name == "" {
				return &ValidationError{Type: "empty_name", Path: fmt.Sprintf("%s.attribute[%d]", at, j), Details: "attribute has no name"}
			}
		}
	}

	for i := range g.Outputs {
		vi := &g.Outputs[i]
		at := fmt.Sprintf("%s.output[%d]", path, i)
		if err := checkValueInfo(vi, at); err != nil {
			return err
		}
		if !available[vi.Name] {
			return &ValidationError{
				Type:    "unproduced_output",
				Path:    at,
				Details: fmt.Sprintf("output %q is never produced", vi.Name),
			}
		}
	}

	return nil
}

func checkValueInfo(vi *ValueInfoProto, path string) error {
	if vi.Name == "" {
		return &ValidationError{Type: "empty_name", Path: path, Details: "value has no name"}
	}
	if vi.Type == nil || vi.Type.TensorType == nil {
		return &ValidationError{Type: "missing_type", Path: path, Details: fmt.Sprintf("%q has no tensor type", vi.Name)}
	}
	tt := vi.Type.TensorType
	if !validElemType(tt.ElemType) {
		return &ValidationError{Type: "elem_type", Path: path, Details: fmt.Sprintf("%q: unknown element type %d", vi.Name, tt.ElemType)}
	}
	if tt.Shape == nil {
		return nil
	}
	for i, d := range tt.Shape.Dims {
		if d.DimValue < 0 {
			return &ValidationError{
				Type:    "shape",
				Path:    fmt.Sprintf("%s.dim[%d]", path, i),
				Details: fmt.Sprintf("%q: negative dimension %d", vi.Name, d.DimValue),
			}
		}
	}
	return nil
}
