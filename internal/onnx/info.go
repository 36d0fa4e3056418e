package onnx

import (
	"fmt"
	"strings"
)

// ModelInfo contains basic information about an ONNX model.
type ModelInfo struct {
	IRVersion       int64
	OpsetVersion    int64
	ProducerName    string
	ProducerVersion string
	GraphName       string
	InputNames      []string
	OutputNames     []string
	Operators       []string // Distinct op types in graph order
	NodeCount       int
	WeightCount     int
}

// GetModelInfo extracts basic info from an ONNX file.
func GetModelInfo(path string) (*ModelInfo, error) {
	proto, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return InfoFromProto(proto)
}

// InfoFromProto summarizes a parsed model.
func InfoFromProto(proto *ModelProto) (*ModelInfo, error) {
	if proto == nil {
		return nil, ErrNilModel
	}
	info := &ModelInfo{
		IRVersion:       proto.IRVersion,
		OpsetVersion:    DefaultDomainOpset(proto),
		ProducerName:    proto.ProducerName,
		ProducerVersion: proto.ProducerVersion,
	}
	if proto.Graph == nil {
		return info, nil
	}

	graph := proto.Graph
	info.GraphName = graph.Name

	// Inputs exclude initializers
	initNames := make(map[string]bool)
	for i := range graph.Initializers {
		initNames[graph.Initializers[i].Name] = true
	}
	for i := range graph.Inputs {
		if !initNames[graph.Inputs[i].Name] {
			info.InputNames = append(info.InputNames, graph.Inputs[i].Name)
		}
	}
	for i := range graph.Outputs {
		info.OutputNames = append(info.OutputNames, graph.Outputs[i].Name)
	}

	seen := make(map[string]bool)
	for i := range graph.Nodes {
		op := graph.Nodes[i].OpType
		if !seen[op] {
			seen[op] = true
			info.Operators = append(info.Operators, op)
		}
	}

	info.NodeCount = len(graph.Nodes)
	info.WeightCount = len(graph.Initializers)
	return info, nil
}

// DefaultDomainOpset returns the opset version imported for the default
// ("" or "ai.onnx") domain, or 0 if there is none.
func DefaultDomainOpset(proto *ModelProto) int64 {
	if proto == nil {
		return 0
	}
	for _, opset := range proto.OpsetImport {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			return opset.Version
		}
	}
	return 0
}

// ElemTypeName returns the lowercase name of an element type, e.g. "int64".
func ElemTypeName(t int32) string {
	if name, ok := elemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", t)
}

// FormatShape renders a shape as "[1, ?, 50257]". Named dimensions print
// their name and unbound ones print "?". A nil shape has unknown rank.
func FormatShape(shape *TensorShapeProto) string {
	if shape == nil {
		return "?"
	}
	parts := make([]string, len(shape.Dims))
	for i, d := range shape.Dims {
		switch {
		case d.DimParam != "":
			parts[i] = d.DimParam
		case d.IsFixed():
			parts[i] = fmt.Sprint(d.DimValue)
		default:
			parts[i] = "?"
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DescribeValue renders a value as "name: type[shape]".
func DescribeValue(vi *ValueInfoProto) string {
	if vi.Type == nil || vi.Type.TensorType == nil {
		return vi.Name + ": ?"
	}
	tt := vi.Type.TensorType
	return vi.Name + ": " + ElemTypeName(tt.ElemType) + FormatShape(tt.Shape)
}

// ListSupportedOps returns the default-domain operators whose arity Check
// validates.
func ListSupportedOps() []string {
	return defaultOps.SupportedOps()
}
