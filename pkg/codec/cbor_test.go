package codec

import (
	"bytes"
	"testing"
)

func TestMarshal_DeterministicMapOrder(t *testing.T) {
	a := map[string]any{"loan_id": uint64(3), "amount": uint64(100), "borrower": "b"}
	b := map[string]any{"borrower": "b", "amount": uint64(100), "loan_id": uint64(3)}

	ea, err := Marshal(a)
	if err != nil {
		t.Fatalf("marshal a: %v", err)
	}
	eb, err := Marshal(b)
	if err != nil {
		t.Fatalf("marshal b: %v", err)
	}
	if !bytes.Equal(ea, eb) {
		t.Fatalf("encodings differ:\n%x\n%x", ea, eb)
	}
}

func TestUnmarshal_AnyMapUsesStringKeys(t *testing.T) {
	raw, err := Marshal(map[string]any{"nested": map[string]any{"k": "v"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("top level is %T", out)
	}
	if _, ok := m["nested"].(map[string]any); !ok {
		t.Fatalf("nested is %T", m["nested"])
	}
}
