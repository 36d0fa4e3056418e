package fixture

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-fixture/internal/onnx"
)

func TestBuildDefault(t *testing.T) {
	model, err := Build(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, model.Graph)

	g := model.Graph
	assert.Equal(t, "test_model", g.Name)
	require.Len(t, g.Nodes, 1)

	want := onnx.NodeProto{
		Name:    "test_node",
		OpType:  "Identity",
		Inputs:  []string{"input_ids"},
		Outputs: []string{"logits"},
	}
	if diff := cmp.Diff(want, g.Nodes[0]); diff != "" {
		t.Errorf("node mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, g.Inputs, 1)
	require.Len(t, g.Outputs, 1)
	assert.Equal(t, "input_ids: int64[1, ?]", onnx.DescribeValue(&g.Inputs[0]))
	assert.Equal(t, "logits: float32[1, ?, 50257]", onnx.DescribeValue(&g.Outputs[0]))

	assert.Equal(t, int64(onnx.DefaultIRVersion), model.IRVersion)
	assert.Equal(t, int64(onnx.DefaultOpsetVersion), onnx.DefaultDomainOpset(model))
}

func TestBuildRejectsBadSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VocabSize = 0
	_, err := Build(cfg)
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.BatchSize = -1
	_, err = Build(cfg)
	require.Error(t, err)
}

func TestBuildRejectsInvalidGraph(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpType = ""
	_, err := Build(cfg)
	require.ErrorIs(t, err, onnx.ErrInvalidModel)
}

func TestBuildAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)

	require.NoError(t, BuildAndSave(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultPath, entries[0].Name())

	require.NoError(t, Verify(path, DefaultConfig()))
}

func TestBuildAndSaveParsesBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, BuildAndSave(path))

	model, err := onnx.ParseFile(path)
	require.NoError(t, err)

	g := model.Graph
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Identity", g.Nodes[0].OpType)

	in := g.Inputs[0].Type.TensorType
	assert.Equal(t, "input_ids", g.Inputs[0].Name)
	assert.Equal(t, int32(onnx.TensorProtoInt64), in.ElemType)
	assert.Equal(t, []onnx.DimensionProto{onnx.Fixed(1), onnx.Unbound()}, in.Shape.Dims)

	out := g.Outputs[0].Type.TensorType
	assert.Equal(t, "logits", g.Outputs[0].Name)
	assert.Equal(t, int32(onnx.TensorProtoFloat), out.ElemType)
	assert.Equal(t, []onnx.DimensionProto{onnx.Fixed(1), onnx.Unbound(), onnx.Fixed(50257)}, out.Shape.Dims)
}

func TestBuildAndSaveIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, BuildAndSave(path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, BuildAndSave(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildAndSaveMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", DefaultPath)

	err := BuildAndSave(path)
	require.ErrorIs(t, err, fs.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildAndSaveCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VocabSize = 32000
	path := filepath.Join(t.TempDir(), "llama.onnx")

	require.NoError(t, BuildAndSave(path, cfg))
	require.NoError(t, Verify(path, cfg))
	require.ErrorIs(t, Verify(path, DefaultConfig()), ErrMismatch)
}

func TestVerifyModelMismatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *onnx.ModelProto)
	}{
		{"no graph", func(m *onnx.ModelProto) { m.Graph = nil }},
		{"graph name", func(m *onnx.ModelProto) { m.Graph.Name = "other" }},
		{"extra node", func(m *onnx.ModelProto) { m.Graph.Nodes = append(m.Graph.Nodes, m.Graph.Nodes[0]) }},
		{"op type", func(m *onnx.ModelProto) { m.Graph.Nodes[0].OpType = "Relu" }},
		{"node name", func(m *onnx.ModelProto) { m.Graph.Nodes[0].Name = "n" }},
		{"wiring", func(m *onnx.ModelProto) { m.Graph.Nodes[0].Outputs = []string{"x"} }},
		{"input type", func(m *onnx.ModelProto) { m.Graph.Inputs[0].Type.TensorType.ElemType = onnx.TensorProtoInt32 }},
		{"input name", func(m *onnx.ModelProto) { m.Graph.Inputs[0].Name = "ids" }},
		{"output shape", func(m *onnx.ModelProto) {
			m.Graph.Outputs[0].Type.TensorType.Shape.Dims[1] = onnx.Param("seq")
		}},
		{"missing shape", func(m *onnx.ModelProto) { m.Graph.Outputs[0].Type.TensorType.Shape = nil }},
		{"missing type", func(m *onnx.ModelProto) { m.Graph.Outputs[0].Type = nil }},
		{"two outputs", func(m *onnx.ModelProto) { m.Graph.Outputs = append(m.Graph.Outputs, m.Graph.Outputs[0]) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := Build(DefaultConfig())
			require.NoError(t, err)
			tt.mutate(model)
			assert.ErrorIs(t, VerifyModel(model, DefaultConfig()), ErrMismatch)
		})
	}
}

func TestVerifyNilModel(t *testing.T) {
	require.ErrorIs(t, VerifyModel(nil, DefaultConfig()), ErrMismatch)
}

func TestVerifyMissingFile(t *testing.T) {
	err := Verify(filepath.Join(t.TempDir(), "absent.onnx"), DefaultConfig())
	require.ErrorIs(t, err, fs.ErrNotExist)
}
