package onnx

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal validates model and encodes it in the protobuf wire format.
//
// Fields are emitted in field-number order and zero-valued scalars are
// omitted, so equal models always encode to identical bytes.
func Marshal(model *ModelProto) ([]byte, error) {
	if err := Check(model); err != nil {
		return nil, err
	}
	return appendModelProto(nil, model), nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendRepeatedString writes every element, empty ones included: node
// inputs use "" to mark an omitted optional input.
func appendRepeatedString(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func appendRawBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v)) //nolint:gosec // G115: int64 is sign-extended as protobuf requires.
}

// appendMessage writes a length-delimited sub-message. Empty messages are
// still written: an empty DimensionProto is an unbound dimension.
func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendPackedInts(b []byte, num protowire.Number, vs []int64) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v)) //nolint:gosec // G115: sign extension is the wire encoding.
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendPackedInt32s(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(int64(v))) //nolint:gosec // G115: sign extension is the wire encoding.
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendPackedFloats(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendModelProto(b []byte, m *ModelProto) []byte {
	b = appendInt(b, 1, m.IRVersion)
	b = appendString(b, 2, m.ProducerName)
	b = appendString(b, 3, m.ProducerVersion)
	b = appendString(b, 4, m.Domain)
	b = appendInt(b, 5, m.ModelVersion)
	b = appendString(b, 6, m.DocString)
	if m.Graph != nil {
		b = appendMessage(b, 7, appendGraphProto(nil, m.Graph))
	}
	for i := range m.OpsetImport {
		b = appendMessage(b, 8, appendOperatorSetID(nil, &m.OpsetImport[i]))
	}
	for i := range m.MetadataProps {
		b = appendMessage(b, 14, appendStringStringEntry(nil, &m.MetadataProps[i]))
	}
	return b
}

func appendGraphProto(b []byte, g *GraphProto) []byte {
	for i := range g.Nodes {
		b = appendMessage(b, 1, appendNodeProto(nil, &g.Nodes[i]))
	}
	b = appendString(b, 2, g.Name)
	for i := range g.Initializers {
		b = appendMessage(b, 5, appendTensorProto(nil, &g.Initializers[i]))
	}
	b = appendString(b, 10, g.DocString)
	for i := range g.Inputs {
		b = appendMessage(b, 11, appendValueInfoProto(nil, &g.Inputs[i]))
	}
	for i := range g.Outputs {
		b = appendMessage(b, 12, appendValueInfoProto(nil, &g.Outputs[i]))
	}
	for i := range g.ValueInfo {
		b = appendMessage(b, 13, appendValueInfoProto(nil, &g.ValueInfo[i]))
	}
	return b
}

func appendNodeProto(b []byte, n *NodeProto) []byte {
	b = appendRepeatedString(b, 1, n.Inputs)
	b = appendRepeatedString(b, 2, n.Outputs)
	b = appendString(b, 3, n.Name)
	b = appendString(b, 4, n.OpType)
	for i := range n.Attributes {
		b = appendMessage(b, 5, appendAttributeProto(nil, &n.Attributes[i]))
	}
	b = appendString(b, 6, n.DocString)
	b = appendString(b, 7, n.Domain)
	return b
}

func appendTensorProto(b []byte, t *TensorProto) []byte {
	b = appendPackedInts(b, 1, t.Dims)
	b = appendInt(b, 2, int64(t.DataType))
	b = appendPackedFloats(b, 4, t.FloatData)
	b = appendPackedInt32s(b, 5, t.Int32Data)
	b = appendPackedInts(b, 7, t.Int64Data)
	b = appendString(b, 8, t.Name)
	b = appendRawBytes(b, 9, t.RawData)
	b = appendString(b, 12, t.DocString)
	return b
}

func appendValueInfoProto(b []byte, v *ValueInfoProto) []byte {
	b = appendString(b, 1, v.Name)
	if v.Type != nil {
		b = appendMessage(b, 2, appendTypeProto(nil, v.Type))
	}
	b = appendString(b, 3, v.DocString)
	return b
}

func appendTypeProto(b []byte, t *TypeProto) []byte {
	if t.TensorType != nil {
		b = appendMessage(b, 1, appendTensorTypeProto(nil, t.TensorType))
	}
	return b
}

func appendTensorTypeProto(b []byte, t *TensorTypeProto) []byte {
	b = appendInt(b, 1, int64(t.ElemType))
	if t.Shape != nil {
		b = appendMessage(b, 2, appendTensorShapeProto(nil, t.Shape))
	}
	return b
}

func appendTensorShapeProto(b []byte, s *TensorShapeProto) []byte {
	for i := range s.Dims {
		b = appendMessage(b, 1, appendDimensionProto(nil, &s.Dims[i]))
	}
	return b
}

// appendDimensionProto encodes the dim_value/dim_param oneof. A named
// dimension wins over a value; an unbound dimension encodes as empty.
func appendDimensionProto(b []byte, d *DimensionProto) []byte {
	if d.DimParam != "" {
		return appendString(b, 2, d.DimParam)
	}
	if !d.IsFixed() {
		return b
	}
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(d.DimValue)) //nolint:gosec // G115: int64 is sign-extended as protobuf requires.
}

func appendAttributeProto(b []byte, a *AttributeProto) []byte {
	b = appendString(b, 1, a.Name)
	if a.F != 0 {
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(a.F))
	}
	b = appendInt(b, 3, a.I)
	b = appendRawBytes(b, 4, a.S)
	if a.T != nil {
		b = appendMessage(b, 5, appendTensorProto(nil, a.T))
	}
	if a.G != nil {
		b = appendMessage(b, 6, appendGraphProto(nil, a.G))
	}
	b = appendPackedFloats(b, 7, a.Floats)
	b = appendPackedInts(b, 8, a.Ints)
	for _, s := range a.Strings {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, s)
	}
	for i := range a.Tensors {
		b = appendMessage(b, 10, appendTensorProto(nil, &a.Tensors[i]))
	}
	for i := range a.Graphs {
		b = appendMessage(b, 11, appendGraphProto(nil, &a.Graphs[i]))
	}
	b = appendString(b, 13, a.DocString)
	b = appendInt(b, 20, int64(a.Type))
	return b
}

func appendOperatorSetID(b []byte, o *OperatorSetID) []byte {
	b = appendString(b, 1, o.Domain)
	b = appendInt(b, 2, o.Version)
	return b
}

func appendStringStringEntry(b []byte, e *StringStringEntry) []byte {
	b = appendString(b, 1, e.Key)
	b = appendString(b, 2, e.Value)
	return b
}
