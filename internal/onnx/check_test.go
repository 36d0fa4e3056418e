package onnx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValid(t *testing.T) {
	require.NoError(t, Check(buildIdentityModel()))
}

func TestCheckIdentityTypeChangeAllowed(t *testing.T) {
	// Declared types and shapes are metadata only.
	model := buildIdentityModel()
	assert.NotEqual(t,
		model.Graph.Inputs[0].Type.TensorType.ElemType,
		model.Graph.Outputs[0].Type.TensorType.ElemType)
	require.NoError(t, Check(model))
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *ModelProto)
		errType string
	}{
		{"no graph", func(m *ModelProto) { m.Graph = nil }, "missing_graph"},
		{"bad opset", func(m *ModelProto) { m.OpsetImport[0].Version = 0 }, "opset"},
		{"empty op type", func(m *ModelProto) { m.Graph.Nodes[0].OpType = "" }, "op_type"},
		{"dangling input", func(m *ModelProto) { m.Graph.Nodes[0].Inputs[0] = "nope" }, "dangling_input"},
		{"unproduced output", func(m *ModelProto) { m.Graph.Outputs[0].Name = "z" }, "unproduced_output"},
		{"bad elem type", func(m *ModelProto) { m.Graph.Inputs[0].Type.TensorType.ElemType = 99 }, "elem_type"},
		{"undefined elem type", func(m *ModelProto) { m.Graph.Outputs[0].Type.TensorType.ElemType = TensorProtoUndefined }, "elem_type"},
		{"negative dim", func(m *ModelProto) { m.Graph.Inputs[0].Type.TensorType.Shape.Dims[0] = Fixed(-2) }, "shape"},
		{"missing type", func(m *ModelProto) { m.Graph.Inputs[0].Type = nil }, "missing_type"},
		{"unnamed input", func(m *ModelProto) { m.Graph.Inputs[0].Name = "" }, "empty_name"},
		{"duplicate output", func(m *ModelProto) {
			m.Graph.Nodes = append(m.Graph.Nodes, MakeNode("Identity", []string{"x"}, []string{"y"}, "again"))
		}, "duplicate_output"},
		{"out of order", func(m *ModelProto) {
			m.Graph.Nodes = append([]NodeProto{MakeNode("Identity", []string{"y"}, []string{"w"}, "early")}, m.Graph.Nodes...)
		}, "dangling_input"},
		{"identity arity", func(m *ModelProto) { m.Graph.Nodes[0].Inputs = []string{"x", "x"} }, "arity"},
		{"bad initializer", func(m *ModelProto) {
			m.Graph.Initializers = []TensorProto{{Name: "W", DataType: 0}}
		}, "elem_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := buildIdentityModel()
			tt.mutate(model)

			err := Check(model)
			require.ErrorIs(t, err, ErrInvalidModel)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.errType, verr.Type)
		})
	}
}

func TestCheckNilModel(t *testing.T) {
	require.ErrorIs(t, Check(nil), ErrNilModel)
}

func TestCheckOptionalAndInitializerInputs(t *testing.T) {
	model := buildIdentityModel()
	model.Graph.Initializers = []TensorProto{{Name: "min", DataType: TensorProtoFloat}}
	model.Graph.Nodes = append(model.Graph.Nodes,
		MakeNode("Clip", []string{"y", "min", ""}, []string{"clipped"}, "clip"))
	require.NoError(t, Check(model))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Type: "shape", Path: "graph.input[0]", Details: "bad"}
	assert.Equal(t, "shape: graph.input[0]: bad", err.Error())

	err = &ValidationError{Type: "missing_graph", Details: "model has no graph"}
	assert.Equal(t, "missing_graph: model has no graph", err.Error())
}

func TestCheckCustomDomainSkipsArity(t *testing.T) {
	model := buildIdentityModel()
	model.Graph.Nodes[0].Inputs = []string{"x", "x"}
	model.Graph.Nodes[0].Domain = "com.example"
	require.NoError(t, Check(model))
}

func TestListSupportedOps(t *testing.T) {
	ops := ListSupportedOps()
	assert.Contains(t, ops, "Identity")
	assert.Contains(t, ops, "MatMul")
}
