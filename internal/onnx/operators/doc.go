// Package operators describes the standard ONNX operators: how many inputs
// and outputs each accepts. Graph validation uses it to reject nodes wired
// with the wrong arity.
package operators
