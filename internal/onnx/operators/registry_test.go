package operators

import (
	"slices"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	essentialOps := []string{
		"Add", "Sub", "Mul", "Div", "MatMul",
		"Relu", "Sigmoid", "Tanh", "Softmax",
		"Reshape", "Transpose",
		"Identity", "Dropout",
	}

	for _, op := range essentialOps {
		if _, ok := r.Get(op); !ok {
			t.Errorf("Expected operator %s to be registered", op)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("UnknownOp"); ok {
		t.Error("Expected unknown operator to not be found")
	}
}

func TestSupportedOps(t *testing.T) {
	ops := NewRegistry().SupportedOps()

	if len(ops) < 20 {
		t.Errorf("Expected at least 20 supported ops, got %d", len(ops))
	}
	if !slices.IsSorted(ops) {
		t.Error("Expected sorted operator list")
	}
}

func TestRegisterCustomOp(t *testing.T) {
	r := NewRegistry()
	r.Register(Schema{OpType: "MyCustomOp", MinInputs: 2, MaxInputs: 2, MinOutputs: 1, MaxOutputs: 1})

	if _, ok := r.Get("MyCustomOp"); !ok {
		t.Fatal("Expected custom operator to be registered")
	}
	if err := r.CheckArity("MyCustomOp", 1, 1); err == nil {
		t.Error("Expected arity error for custom operator")
	}
}

func TestCheckArity(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		op      string
		in, out int
		wantErr bool
	}{
		{"Identity", 1, 1, false},
		{"Identity", 2, 1, true},
		{"Identity", 1, 0, true},
		{"Concat", 7, 1, false},
		{"Concat", 0, 1, true},
		{"Split", 1, 4, false},
		{"Constant", 0, 1, false},
		{"Constant", 1, 1, true},
		{"Dropout", 1, 2, false},
		{"Dropout", 1, 3, true},
		{"Unknown", 9, 9, false},
	}

	for _, tt := range tests {
		err := r.CheckArity(tt.op, tt.in, tt.out)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckArity(%s, %d, %d) error = %v, wantErr %v", tt.op, tt.in, tt.out, err, tt.wantErr)
		}
	}
}
