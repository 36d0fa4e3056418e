package onnx

import (
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ParseFile parses an ONNX model from file.
//
//nolint:gosec // G304: Path is provided by user, file inclusion is intentional for ONNX model loading
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*ModelProto, error) {
	model := &ModelProto{}
	if err := readModelProto(data, model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return model, nil
}

// fieldFunc decodes one field whose tag has already been consumed from the
// front of b. It returns the number of value bytes consumed, or 0 if the
// field is not handled and should be skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walk iterates over the fields of a single message.
func walk(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}

func expectType(got, want protowire.Type) error {
	if got != want {
		return fmt.Errorf("%w: got %d, want %d", ErrWireType, got, want)
	}
	return nil
}

func readBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if err := expectType(typ, protowire.BytesType); err != nil {
		return nil, 0, err
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func readString(typ protowire.Type, b []byte) (string, int, error) {
	v, n, err := readBytes(typ, b)
	return string(v), n, err
}

func readVarint(typ protowire.Type, b []byte) (int64, int, error) {
	if err := expectType(typ, protowire.VarintType); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return int64(v), n, nil //nolint:gosec // G115: Protobuf varint fits in int64.
}

func readInt32(typ protowire.Type, b []byte) (int32, int, error) {
	v, n, err := readVarint(typ, b)
	return int32(v), n, err //nolint:gosec // G115: Protobuf varint fits in int32.
}

func readFloat32(typ protowire.Type, b []byte) (float32, int, error) {
	if err := expectType(typ, protowire.Fixed32Type); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return math.Float32frombits(v), n, nil
}

// readVarints decodes a repeated varint field in either packed or
// unpacked form and appends the values to dst.
func readVarints(typ protowire.Type, b []byte, dst []int64) ([]int64, int, error) {
	if typ != protowire.BytesType {
		v, n, err := readVarint(typ, b)
		return append(dst, v), n, err
	}
	packed, n, err := readBytes(typ, b)
	if err != nil {
		return dst, 0, err
	}
	for len(packed) > 0 {
		v, m := protowire.ConsumeVarint(packed)
		if m < 0 {
			return dst, 0, protowire.ParseError(m)
		}
		dst = append(dst, int64(v)) //nolint:gosec // G115: Protobuf varint fits in int64.
		packed = packed[m:]
	}
	return dst, n, nil
}

// readFloats decodes a repeated float field in either packed or unpacked form.
func readFloats(typ protowire.Type, b []byte, dst []float32) ([]float32, int, error) {
	if typ != protowire.BytesType {
		v, n, err := readFloat32(typ, b)
		return append(dst, v), n, err
	}
	packed, n, err := readBytes(typ, b)
	if err != nil {
		return dst, 0, err
	}
	for len(packed) > 0 {
		v, m := protowire.ConsumeFixed32(packed)
		if m < 0 {
			return dst, 0, protowire.ParseError(m)
		}
		dst = append(dst, math.Float32frombits(v))
		packed = packed[m:]
	}
	return dst, n, nil
}

// readSub decodes a length-delimited sub-message with read.
func readSub[T any](typ protowire.Type, b []byte, msg *T, read func([]byte, *T) error) (int, error) {
	data, n, err := readBytes(typ, b)
	if err != nil {
		return 0, err
	}
	if err := read(data, msg); err != nil {
		return 0, err
	}
	return n, nil
}

// readModelProto reads ModelProto message.
func readModelProto(data []byte, m *ModelProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // ir_version
			m.IRVersion, n, err = readVarint(typ, b)
		case 2: // producer_name
			m.ProducerName, n, err = readString(typ, b)
		case 3: // producer_version
			m.ProducerVersion, n, err = readString(typ, b)
		case 4: // domain
			m.Domain, n, err = readString(typ, b)
		case 5: // model_version
			m.ModelVersion, n, err = readVarint(typ, b)
		case 6: // doc_string
			m.DocString, n, err = readString(typ, b)
		case 7: // graph
			m.Graph = &GraphProto{}
			n, err = readSub(typ, b, m.Graph, readGraphProto)
		case 8: // opset_import
			var opset OperatorSetID
			n, err = readSub(typ, b, &opset, readOperatorSetID)
			m.OpsetImport = append(m.OpsetImport, opset)
		case 14: // metadata_props
			var entry StringStringEntry
			n, err = readSub(typ, b, &entry, readStringStringEntry)
			m.MetadataProps = append(m.MetadataProps, entry)
		}
		return n, err
	})
}

// readGraphProto reads GraphProto message.
func readGraphProto(data []byte, m *GraphProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // node
			var node NodeProto
			n, err = readSub(typ, b, &node, readNodeProto)
			m.Nodes = append(m.Nodes, node)
		case 2: // name
			m.Name, n, err = readString(typ, b)
		case 5: // initializer
			var tensor TensorProto
			n, err = readSub(typ, b, &tensor, readTensorProto)
			m.Initializers = append(m.Initializers, tensor)
		case 10: // doc_string
			m.DocString, n, err = readString(typ, b)
		case 11: // input
			var vi ValueInfoProto
			n, err = readSub(typ, b, &vi, readValueInfoProto)
			m.Inputs = append(m.Inputs, vi)
		case 12: // output
			var vi ValueInfoProto
			n, err = readSub(typ, b, &vi, readValueInfoProto)
			m.Outputs = append(m.Outputs, vi)
		case 13: // value_info
			var vi ValueInfoProto
			n, err = readSub(typ, b, &vi, readValueInfoProto)
			m.ValueInfo = append(m.ValueInfo, vi)
		}
		return n, err
	})
}

// readNodeProto reads NodeProto message.
func readNodeProto(data []byte, m *NodeProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var s string
		switch num {
		case 1: // input
			s, n, err = readString(typ, b)
			m.Inputs = append(m.Inputs, s)
		case 2: // output
			s, n, err = readString(typ, b)
			m.Outputs = append(m.Outputs, s)
		case 3: // name
			m.Name, n, err = readString(typ, b)
		case 4: // op_type
			m.OpType, n, err = readString(typ, b)
		case 5: // attribute
			var attr AttributeProto
			n, err = readSub(typ, b, &attr, readAttributeProto)
			m.Attributes = append(m.Attributes, attr)
		case 6: // doc_string
			m.DocString, n, err = readString(typ, b)
		case 7: // domain
			m.Domain, n, err = readString(typ, b)
		}
		return n, err
	})
}

// readTensorProto reads TensorProto message.
func readTensorProto(data []byte, m *TensorProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // dims
			m.Dims, n, err = readVarints(typ, b, m.Dims)
		case 2: // data_type
			m.DataType, n, err = readInt32(typ, b)
		case 4: // float_data
			m.FloatData, n, err = readFloats(typ, b, m.FloatData)
		case 5: // int32_data
			var vs []int64
			vs, n, err = readVarints(typ, b, nil)
			for _, v := range vs {
				m.Int32Data = append(m.Int32Data, int32(v)) //nolint:gosec // G115: int32_data holds int32 values.
			}
		case 7: // int64_data
			m.Int64Data, n, err = readVarints(typ, b, m.Int64Data)
		case 8: // name
			m.Name, n, err = readString(typ, b)
		case 9: // raw_data
			var raw []byte
			raw, n, err = readBytes(typ, b)
			m.RawData = append([]byte(nil), raw...)
		case 12: // doc_string
			m.DocString, n, err = readString(typ, b)
		}
		return n, err
	})
}

// readValueInfoProto reads ValueInfoProto message.
func readValueInfoProto(data []byte, m *ValueInfoProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // name
			m.Name, n, err = readString(typ, b)
		case 2: // type
			m.Type = &TypeProto{}
			n, err = readSub(typ, b, m.Type, readTypeProto)
		case 3: // doc_string
			m.DocString, n, err = readString(typ, b)
		}
		return n, err
	})
}

// readTypeProto reads TypeProto message. Only tensor types are decoded.
func readTypeProto(data []byte, m *TypeProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		if num == 1 { // tensor_type
			m.TensorType = &TensorTypeProto{}
			n, err = readSub(typ, b, m.TensorType, readTensorTypeProto)
		}
		return n, err
	})
}

// readTensorTypeProto reads TensorTypeProto message.
func readTensorTypeProto(data []byte, m *TensorTypeProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // elem_type
			m.ElemType, n, err = readInt32(typ, b)
		case 2: // shape
			m.Shape = &TensorShapeProto{}
			n, err = readSub(typ, b, m.Shape, readTensorShapeProto)
		}
		return n, err
	})
}

// readTensorShapeProto reads TensorShapeProto message.
func readTensorShapeProto(data []byte, m *TensorShapeProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		if num == 1 { // dim
			var dim DimensionProto
			n, err = readSub(typ, b, &dim, readDimensionProto)
			m.Dims = append(m.Dims, dim)
		}
		return n, err
	})
}

// readDimensionProto reads DimensionProto message.
func readDimensionProto(data []byte, m *DimensionProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // dim_value
			m.DimValue, n, err = readVarint(typ, b)
			m.HasValue = err == nil
		case 2: // dim_param
			m.DimParam, n, err = readString(typ, b)
		}
		return n, err
	})
}

// readAttributeProto reads AttributeProto message.
//
//nolint:gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func readAttributeProto(data []byte, m *AttributeProto) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // name
			m.Name, n, err = readString(typ, b)
		case 2: // f
			m.F, n, err = readFloat32(typ, b)
		case 3: // i
			m.I, n, err = readVarint(typ, b)
		case 4: // s
			var s []byte
			s, n, err = readBytes(typ, b)
			m.S = append([]byte(nil), s...)
		case 5: // t
			m.T = &TensorProto{}
			n, err = readSub(typ, b, m.T, readTensorProto)
		case 6: // g
			m.G = &GraphProto{}
			n, err = readSub(typ, b, m.G, readGraphProto)
		case 7: // floats
			m.Floats, n, err = readFloats(typ, b, m.Floats)
		case 8: // ints
			m.Ints, n, err = readVarints(typ, b, m.Ints)
		case 9: // strings
			var s []byte
			s, n, err = readBytes(typ, b)
			m.Strings = append(m.Strings, append([]byte(nil), s...))
		case 10: // tensors
			var t TensorProto
			n, err = readSub(typ, b, &t, readTensorProto)
			m.Tensors = append(m.Tensors, t)
		case 11: // graphs
			var g GraphProto
			n, err = readSub(typ, b, &g, readGraphProto)
			m.Graphs = append(m.Graphs, g)
		case 13: // doc_string
			m.DocString, n, err = readString(typ, b)
		case 20: // type
			m.Type, n, err = readInt32(typ, b)
		}
		return n, err
	})
}

// readOperatorSetID reads OperatorSetID message.
func readOperatorSetID(data []byte, m *OperatorSetID) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // domain
			m.Domain, n, err = readString(typ, b)
		case 2: // version
			m.Version, n, err = readVarint(typ, b)
		}
		return n, err
	})
}

// readStringStringEntry reads StringStringEntry message.
func readStringStringEntry(data []byte, m *StringStringEntry) error {
	return walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1: // key
			m.Key, n, err = readString(typ, b)
		case 2: // value
			m.Value, n, err = readString(typ, b)
		}
		return n, err
	})
}
