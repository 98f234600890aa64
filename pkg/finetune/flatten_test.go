package finetune

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlatten_Nested(t *testing.T) {
	var v any
	if err := json.Unmarshal([]byte(`{"object":"list","data":[{"level":"info","message":"Created fine-tune"},{"level":"warn"}]}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Flatten(v)
	want := map[string]any{
		"object":         "list",
		"data.0.level":   "info",
		"data.0.message": "Created fine-tune",
		"data.1.level":   "warn",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %#v, want %#v", got, want)
	}
}

func TestFlatten_EmptyContainers(t *testing.T) {
	var v any
	if err := json.Unmarshal([]byte(`{"data":[],"meta":{}}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Flatten(v)
	if len(got) != 2 {
		t.Fatalf("got %d keys, want 2: %#v", len(got), got)
	}
	if arr, ok := got["data"].([]any); !ok || len(arr) != 0 {
		t.Errorf("data = %#v, want empty array leaf", got["data"])
	}
	if obj, ok := got["meta"].(map[string]any); !ok || len(obj) != 0 {
		t.Errorf("meta = %#v, want empty object leaf", got["meta"])
	}
}

func TestFlatten_DeepNesting(t *testing.T) {
	var v any
	if err := json.Unmarshal([]byte(`{"a":{"b":{"c":[1,2]}}}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Flatten(v)
	if got["a.b.c.0"] != float64(1) || got["a.b.c.1"] != float64(2) {
		t.Errorf("Flatten() = %#v", got)
	}
}
