package ordered

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestMap_KeepsInsertionOrder(t *testing.T) {
	m := New[int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"zeta":4,"alpha":2,"mid":3}` {
		t.Fatalf("unexpected json: %s", b)
	}
	if m.Len() != 3 {
		t.Fatalf("len: %d", m.Len())
	}
}

func TestMap_NestedAndNil(t *testing.T) {
	inner := New[string]()
	inner.Set("b", "x")
	outer := New[any]()
	outer.Set("inner", inner)
	outer.Set("empty", New[string]())

	b, err := json.Marshal(outer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"inner":{"b":"x"},"empty":{}}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestMap_GetOnZeroValue(t *testing.T) {
	var m Map[int]
	if _, ok := m.Get("x"); ok {
		t.Fatalf("zero map should be empty")
	}
	if m.Has("x") || len(m.Keys()) != 0 {
		t.Fatalf("zero map should be empty")
	}
}
