package schema

import "testing"

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	n := Infer(`{"a": 1}`)
	r.Add("v0.0.44_resp", n)

	if got := r.Get("v0.0.44_resp"); got != n {
		t.Error("expected stored schema back")
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown name, got %+v", got)
	}
}

func TestRegistry_PopulatedEntryNeverOverwritten(t *testing.T) {
	r := NewRegistry()
	full := Infer(`{"a": 1, "b": 2}`)
	r.Add("resp", full)

	r.Add("resp", NewObject())
	if got := r.Get("resp"); got != full {
		t.Error("empty schema overwrote a populated entry")
	}

	r.Add("resp", Infer(`{"c": 3}`))
	if got := r.Get("resp"); got != full {
		t.Error("later populated schema overwrote an existing populated entry")
	}
}

func TestRegistry_EmptyEntryIsFilled(t *testing.T) {
	r := NewRegistry()
	placeholder := &Node{Type: "object", Description: "Schema for resp", Properties: map[string]*Node{}}
	r.Add("resp", placeholder)

	full := Infer(`{"a": 1}`)
	r.Add("resp", full)

	got := r.Get("resp")
	if !got.Populated() {
		t.Fatal("empty entry was not filled")
	}
	if got.Description != "Schema for resp" {
		t.Errorf("description not preserved, got %q", got.Description)
	}
}

func TestRegistry_RecordFirstExampleWins(t *testing.T) {
	r := NewRegistry()
	r.Record("resp", "")
	r.Record("resp", `{"a": 1}`)
	r.Finalize()

	// The empty first recording wins, so Finalize produces a placeholder.
	got := r.Get("resp")
	if got == nil {
		t.Fatal("expected a finalized entry")
	}
	if got.Populated() {
		t.Errorf("expected placeholder, got %+v", got)
	}
	if got.Description != "Schema for resp" {
		t.Errorf("unexpected description %q", got.Description)
	}
}

func TestRegistry_FinalizeInfersFromExample(t *testing.T) {
	r := NewRegistry()
	r.Record("resp", `{"a": 1}`)
	r.Finalize()

	got := r.Get("resp")
	if got == nil || !got.Populated() {
		t.Fatalf("expected inferred schema, got %+v", got)
	}
	if got.Description != "Schema for resp" {
		t.Errorf("unexpected description %q", got.Description)
	}
}

func TestRegistry_FinalizePopulatesEmptyEntryFromExample(t *testing.T) {
	r := NewRegistry()
	r.Record("resp", `{"a": 1}`)
	r.Add("resp", &Node{Type: "object", Description: "kept", Properties: map[string]*Node{}})
	r.Finalize()

	got := r.Get("resp")
	if !got.Populated() {
		t.Fatal("expected entry populated from recorded example")
	}
	if got.Description != "kept" {
		t.Errorf("expected existing description kept, got %q", got.Description)
	}
}

func TestRegistry_NamesInFirstSeenOrder(t *testing.T) {
	r := NewRegistry()
	r.Record("b_resp", "")
	r.Record("a_resp", "")
	r.Record("b_resp", `{"x": 1}`)

	names := r.Names()
	if len(names) != 2 || names[0] != "b_resp" || names[1] != "a_resp" {
		t.Errorf("expected [b_resp a_resp], got %v", names)
	}
}

func TestNode_Clone(t *testing.T) {
	n := Infer(`{"a": {"b": [1]}}`)
	c := n.Clone()

	if c == n {
		t.Fatal("clone returned the same pointer")
	}
	c.Properties["a"].Properties["b"].Items.Type = "string"
	if n.Properties["a"].Properties["b"].Items.Type != "integer" {
		t.Error("mutating the clone changed the original")
	}
}
