package operators

// registerShapeOps registers shape manipulation operators.
func (r *Registry) registerShapeOps() {
	r.register("Reshape", 2, 2)
	r.register("Transpose", 1, 1)
	r.register("Squeeze", 1, 2)
	r.register("Unsqueeze", 2, 2)
	r.register("Concat", 1, Variadic)
	r.register("Slice", 3, 5)
	r.register("Gather", 2, 2)
	r.register("Flatten", 1, 1)
	r.register("Expand", 2, 2)
	r.Register(Schema{OpType: "Split", MinInputs: 1, MaxInputs: 2, MinOutputs: 1, MaxOutputs: Variadic})
}
