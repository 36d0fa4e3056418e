package operators

import (
	"fmt"
	"slices"
)

// Variadic marks an unbounded input or output count.
const Variadic = -1

// Schema describes the arity of an operator. Optional inputs omitted with
// an empty name still count toward the positional total.
type Schema struct {
	OpType     string
	MinInputs  int
	MaxInputs  int // Variadic for no limit
	MinOutputs int
	MaxOutputs int // Variadic for no limit
}

// Registry maps ONNX operator types to their schemas.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry creates a registry with all known default-domain operators.
func NewRegistry() *Registry {
	r := &Registry{
		schemas: make(map[string]Schema),
	}

	r.registerMathOps()
	r.registerActivations()
	r.registerShapeOps()
	r.registerUtilityOps()

	return r
}

// Register adds or replaces a schema.
func (r *Registry) Register(s Schema) {
	r.schemas[s.OpType] = s
}

// register is shorthand for operators with a single output.
func (r *Registry) register(opType string, minIn, maxIn int) {
	r.Register(Schema{OpType: opType, MinInputs: minIn, MaxInputs: maxIn, MinOutputs: 1, MaxOutputs: 1})
}

// Get returns the schema for an operator type.
func (r *Registry) Get(opType string) (Schema, bool) {
	s, ok := r.schemas[opType]
	return s, ok
}

// SupportedOps returns all registered operator types, sorted.
func (r *Registry) SupportedOps() []string {
	ops := make([]string, 0, len(r.schemas))
	for op := range r.schemas {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// CheckArity validates input/output counts for opType. Unknown operators
// are accepted.
func (r *Registry) CheckArity(opType string, inputs, outputs int) error {
	s, ok := r.schemas[opType]
	if !ok {
		return nil
	}
	if err := checkRange("inputs", inputs, s.MinInputs, s.MaxInputs); err != nil {
		return fmt.Errorf("%s: %w", opType, err)
	}
	if err := checkRange("outputs", outputs, s.MinOutputs, s.MaxOutputs); err != nil {
		return fmt.Errorf("%s: %w", opType, err)
	}
	return nil
}

func checkRange(what string, n, lo, hi int) error {
	if n < lo {
		return fmt.Errorf("%d %s, want at least %d", n, what, lo)
	}
	if hi != Variadic && n > hi {
		return fmt.Errorf("%d %s, want at most %d", n, what, hi)
	}
	return nil
}
