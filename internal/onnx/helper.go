package onnx

import (
	"maps"
	"slices"
)

// Current format revision written by MakeModel.
const (
	DefaultIRVersion    = 10
	DefaultOpsetVersion = 21
	DefaultProducerName = "born-fixture"
)

// ModelOptions configures the metadata MakeModel attaches to a graph.
type ModelOptions struct {
	IRVersion       int64
	OpsetImport     []OperatorSetID
	ProducerName    string
	ProducerVersion string
	Domain          string
	ModelVersion    int64
	DocString       string
	Metadata        map[string]string
}

// DefaultModelOptions returns the default model metadata: the current IR
// version and the default-domain opset.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{
		IRVersion:    DefaultIRVersion,
		OpsetImport:  []OperatorSetID{{Domain: "", Version: DefaultOpsetVersion}},
		ProducerName: DefaultProducerName,
	}
}

// Fixed returns a dimension of static size n.
func Fixed(n int64) DimensionProto {
	return DimensionProto{DimValue: n, HasValue: true}
}

// Unbound returns an anonymous symbolic dimension.
func Unbound() DimensionProto {
	return DimensionProto{}
}

// Param returns a symbolic dimension named name.
func Param(name string) DimensionProto {
	return DimensionProto{DimParam: name}
}

// MakeTensorValueInfo describes a tensor named name with the given element
// type and shape.
//
// Example:
//
//	// input_ids: int64[1, ?]
//	in := onnx.MakeTensorValueInfo("input_ids", onnx.TensorProtoInt64, onnx.Fixed(1), onnx.Unbound())
func MakeTensorValueInfo(name string, elemType int32, dims ...DimensionProto) ValueInfoProto {
	shape := &TensorShapeProto{Dims: make([]DimensionProto, len(dims))}
	copy(shape.Dims, dims)
	return ValueInfoProto{
		Name: name,
		Type: &TypeProto{
			TensorType: &TensorTypeProto{
				ElemType: elemType,
				Shape:    shape,
			},
		},
	}
}

// MakeNode creates a node in the default domain.
func MakeNode(opType string, inputs, outputs []string, name string, attrs ...AttributeProto) NodeProto {
	return NodeProto{
		Name:       name,
		OpType:     opType,
		Inputs:     append([]string(nil), inputs...),
		Outputs:    append([]string(nil), outputs...),
		Attributes: attrs,
	}
}

// MakeGraph assembles nodes and declared inputs/outputs into a graph.
// Nodes must already be in topological order.
func MakeGraph(nodes []NodeProto, name string, inputs, outputs []ValueInfoProto, initializers ...TensorProto) *GraphProto {
	return &GraphProto{
		Name:         name,
		Nodes:        append([]NodeProto(nil), nodes...),
		Inputs:       append([]ValueInfoProto(nil), inputs...),
		Outputs:      append([]ValueInfoProto(nil), outputs...),
		Initializers: initializers,
	}
}

// MakeModel wraps graph into a model. Without options the model carries
// DefaultModelOptions metadata.
func MakeModel(graph *GraphProto, opts ...ModelOptions) *ModelProto {
	opt := DefaultModelOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	model := &ModelProto{
		IRVersion:       opt.IRVersion,
		OpsetImport:     append([]OperatorSetID(nil), opt.OpsetImport...),
		ProducerName:    opt.ProducerName,
		ProducerVersion: opt.ProducerVersion,
		Domain:          opt.Domain,
		ModelVersion:    opt.ModelVersion,
		DocString:       opt.DocString,
		Graph:           graph,
	}
	for _, key := range slices.Sorted(maps.Keys(opt.Metadata)) {
		model.MetadataProps = append(model.MetadataProps, StringStringEntry{Key: key, Value: opt.Metadata[key]})
	}
	return model
}
