package config

import "testing"

func TestValue_Variants(t *testing.T) {
	tests := []struct {
		name  string
		v     Value
		kind  Kind
		str   string
		iface any
	}{
		{"absent", Absent(), KindAbsent, "", nil},
		{"string", StringValue("alice"), KindString, "alice", "alice"},
		{"integer", IntegerValue(-12), KindInteger, "-12", -12},
		{"path", PathValue("/tmp/data"), KindPath, "/tmp/data", "/tmp/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if tt.v.String() != tt.str {
				t.Errorf("String = %q, want %q", tt.v.String(), tt.str)
			}
			if tt.v.Interface() != tt.iface {
				t.Errorf("Interface = %v, want %v", tt.v.Interface(), tt.iface)
			}
		})
	}
}

func TestValue_Raw(t *testing.T) {
	if Absent().Raw() != nil {
		t.Error("Absent().Raw() should be nil")
	}
	raw := IntegerValue(42).Raw()
	if raw == nil || *raw != "42" {
		t.Errorf("IntegerValue(42).Raw() = %v, want \"42\"", raw)
	}
	raw = StringValue("").Raw()
	if raw == nil || *raw != "" {
		t.Error("StringValue(\"\").Raw() should point to the empty string")
	}
}

func TestValue_Accessors(t *testing.T) {
	if n, ok := IntegerValue(5).Int(); !ok || n != 5 {
		t.Errorf("Int() = %d, %v", n, ok)
	}
	if _, ok := StringValue("5").Int(); ok {
		t.Error("StringValue.Int() should fail")
	}
	if p, ok := PathValue("/x").Path(); !ok || p != "/x" {
		t.Errorf("Path() = %q, %v", p, ok)
	}
	if _, ok := StringValue("/x").Path(); ok {
		t.Error("StringValue.Path() should fail")
	}
	if s, ok := StringValue("x").Str(); !ok || s != "x" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	if _, ok := PathValue("x").Str(); ok {
		t.Error("PathValue.Str() should fail")
	}
	if StringValue("1").Equal(IntegerValue(1)) {
		t.Error("values of different kinds should not be equal")
	}
}
