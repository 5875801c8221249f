package geo

import "testing"

func TestPoint_IsUnresolved(t *testing.T) {
	if !Unresolved().IsUnresolved() {
		t.Error("Unresolved() must report unresolved")
	}
	if NewPoint(48.8566, 2.3522).IsUnresolved() {
		t.Error("a real coordinate must not report unresolved")
	}
	if !NewPoint(0, 0).IsUnresolved() {
		t.Error("(0,0) is the unresolved default")
	}
}

func TestPoint_Strings(t *testing.T) {
	p := NewPoint(48.8566, 2.3522)
	if p.LatString() != "48.8566" {
		t.Errorf("LatString = %q", p.LatString())
	}
	if p.LonString() != "2.3522" {
		t.Errorf("LonString = %q", p.LonString())
	}
}

func TestProvenance_String(t *testing.T) {
	if Explicit.String() != "explicit" || Inferred.String() != "inferred" {
		t.Errorf("unexpected provenance labels: %q, %q", Explicit, Inferred)
	}
}
