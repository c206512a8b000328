package topo

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueKinds(t *testing.T) {
	if None().Kind() != ValueNone {
		t.Error("None() should have kind ValueNone")
	}
	if String("rib1").Kind() != ValueString {
		t.Error("String() should have kind ValueString")
	}
	if Number(2.5).Kind() != ValueNumber {
		t.Error("Number() should have kind ValueNumber")
	}

	if s, ok := String("rib1").AsString(); !ok || s != "rib1" {
		t.Errorf("AsString = (%q, %v), want (rib1, true)", s, ok)
	}
	if _, ok := None().AsString(); ok {
		t.Error("AsString on a none value should report false")
	}
	if n, ok := Number(2.5).AsNumber(); !ok || n != 2.5 {
		t.Errorf("AsNumber = (%g, %v), want (2.5, true)", n, ok)
	}
}

func TestValueEqual(t *testing.T) {
	if !String("root").Equal(String("root")) {
		t.Error("equal strings should compare equal")
	}
	if String("root").Equal(String("tip")) {
		t.Error("different strings should not compare equal")
	}
	if String("root").Equal(None()) {
		t.Error("a string value is not a none value")
	}
	if !None().Equal(None()) {
		t.Error("none values should compare equal")
	}
	// A number that happens to render like a string stays distinct.
	if Number(0).Equal(None()) {
		t.Error("number zero is not none")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{None(), "none"},
		{String("spar1"), "spar1"},
		{Number(2.5), "2.5"},
		{Number(10), "10"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tags := TagSet{
		TagGroup:      String("OML1"),
		TagStructural: None(),
		"span":        Number(2.5),
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"group":"OML1","span":2.5,"structural":null}`
	if string(raw) != want {
		t.Errorf("marshaled tags = %s, want %s", raw, want)
	}
}

func TestTagSetPresenceVersusNone(t *testing.T) {
	tags := TagSet{}
	if tags.Has(TagStructural) {
		t.Error("fresh tag set should be empty")
	}

	tags.Set(TagStructural, None())
	if !tags.Has(TagStructural) {
		t.Error("a none-valued tag is still present")
	}
	v, ok := tags.Get(TagStructural)
	if !ok || v.Kind() != ValueNone {
		t.Errorf("Get = (%v, %v), want none value present", v, ok)
	}

	if _, ok := tags.Get(TagGroup); ok {
		t.Error("absent tag should report not present")
	}
}

func TestTagSetNamesSorted(t *testing.T) {
	tags := TagSet{}
	tags.Set(TagStructural, None())
	tags.Set(TagCap, String(CapRoot))
	tags.Set(TagGroup, String(RibGroup(1)))

	got := tags.Names()
	want := []string{TagCap, TagGroup, TagStructural}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestGroupIDs(t *testing.T) {
	if RibGroup(3) != "rib3" {
		t.Errorf("RibGroup(3) = %q, want rib3", RibGroup(3))
	}
	if SparGroup(1) != "spar1" {
		t.Errorf("SparGroup(1) = %q, want spar1", SparGroup(1))
	}
	if SkinGroup(9) != "OML9" {
		t.Errorf("SkinGroup(9) = %q, want OML9", SkinGroup(9))
	}
}
