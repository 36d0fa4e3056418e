package operators

// registerActivations registers activation functions.
func (r *Registry) registerActivations() {
	for _, op := range []string{"Relu", "LeakyRelu", "Sigmoid", "Tanh", "Softmax", "LogSoftmax", "Gelu", "Elu", "Selu"} {
		r.register(op, 1, 1)
	}
	r.register("PRelu", 2, 2)
	r.register("Clip", 1, 3)
}
