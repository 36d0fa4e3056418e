package operators

// registerUtilityOps registers Identity, constants and type/shape queries.
func (r *Registry) registerUtilityOps() {
	r.register("Identity", 1, 1)
	r.register("Constant", 0, 0)
	r.register("Cast", 1, 1)
	r.register("ConstantOfShape", 1, 1)
	r.register("Shape", 1, 1)
	r.register("Size", 1, 1)
	r.register("Where", 3, 3)
	r.Register(Schema{OpType: "Dropout", MinInputs: 1, MaxInputs: 3, MinOutputs: 1, MaxOutputs: 2})
}
