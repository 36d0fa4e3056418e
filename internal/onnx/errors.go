package onnx

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidModel = errors.New("invalid onnx model")
	ErrWireType     = errors.New("unexpected protobuf wire type")
	ErrNilModel     = errors.New("model is nil")
)

// ValidationError describes a structural problem found by Check.
// It matches ErrInvalidModel with errors.Is.
type ValidationError struct {
	Type    string // Kind of problem (e.g., "elem_type", "dangling_input")
	Path    string // Location in the model (e.g., "graph.input[0]")
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Path, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Is makes every ValidationError match ErrInvalidModel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidModel
}
