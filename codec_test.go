package volt

import "testing"

func TestJSONCodec_DecodesAction(t *testing.T) {
	var action Action
	if err := (JSONCodec{}).Unmarshal([]byte(`{"kind":"INC","payload":2}`), &action); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if action.Kind != "INC" {
		t.Errorf("expected kind INC, got %q", action.Kind)
	}
	if action.Payload != float64(2) {
		t.Errorf("expected payload 2, got %v", action.Payload)
	}
}

func TestJSONCodec_RejectsMalformed(t *testing.T) {
	var action Action
	if err := (JSONCodec{}).Unmarshal([]byte(`{`), &action); err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func TestYAMLCodec_DecodesAction(t *testing.T) {
	var action Action
	if err := (YAMLCodec{}).Unmarshal([]byte("kind: ADD\npayload: 3\n"), &action); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if action.Kind != "ADD" {
		t.Errorf("expected kind ADD, got %q", action.Kind)
	}
	if action.Payload != 3 {
		t.Errorf("expected payload 3, got %v", action.Payload)
	}
}

func TestCodec_ContentTypes(t *testing.T) {
	if got := (JSONCodec{}).ContentType(); got != "application/json" {
		t.Errorf("unexpected JSON content type %q", got)
	}
	if got := (YAMLCodec{}).ContentType(); got != "application/x-yaml" {
		t.Errorf("unexpected YAML content type %q", got)
	}
}
