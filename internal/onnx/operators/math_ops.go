package operators

// registerMathOps registers arithmetic and matrix operators.
func (r *Registry) registerMathOps() {
	for _, op := range []string{"Add", "Sub", "Mul", "Div", "Pow", "MatMul"} {
		r.register(op, 2, 2)
	}
	for _, op := range []string{"Sqrt", "Exp", "Log", "Neg", "Abs"} {
		r.register(op, 1, 1)
	}
	r.register("Gemm", 2, 3)
	r.register("Sum", 1, Variadic)
	r.register("ReduceSum", 1, 2)
	r.register("ReduceMean", 1, 2)
}
