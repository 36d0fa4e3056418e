// Package onnx reads and writes ONNX model files.
//
// ONNX (Open Neural Network Exchange) is an open format for describing
// computation graphs. This package carries hand-written structs for the
// protobuf messages it needs and encodes/decodes them with protowire.
//
// Key components:
//   - ModelProto: Top-level ONNX model structure with metadata and graph
//   - GraphProto: Computation graph with nodes, inputs, outputs, and initializers
//   - NodeProto: Single operation in the graph (e.g., Identity, MatMul)
//   - ValueInfoProto: Input/output tensor type and shape
//   - TensorProto: Weight/initializer tensor with data and shape
//
// Building and saving a model:
//
//	in := onnx.MakeTensorValueInfo("x", onnx.TensorProtoFloat, onnx.Fixed(1), onnx.Unbound())
//	out := onnx.MakeTensorValueInfo("y", onnx.TensorProtoFloat, onnx.Fixed(1), onnx.Unbound())
//	node := onnx.MakeNode("Identity", []string{"x"}, []string{"y"}, "id")
//	graph := onnx.MakeGraph([]onnx.NodeProto{node}, "g", []onnx.ValueInfoProto{in}, []onnx.ValueInfoProto{out})
//	if err := onnx.Save(onnx.MakeModel(graph), "model.onnx"); err != nil {
//	    log.Fatal(err)
//	}
//
// Reading it back:
//
//	model, err := onnx.ParseFile("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Graph: %s with %d nodes\n", model.Graph.Name, len(model.Graph.Nodes))
package onnx
