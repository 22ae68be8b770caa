package ui

import "testing"

func TestComputeKey(t *testing.T) {
	if ComputeKey("summary", 80, true) != ComputeKey("summary", 80, true) {
		t.Fatalf("expected same key for same inputs")
	}
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Fatalf("expected string boundaries to change the key")
	}
	if ComputeKey("summary", 80) == ComputeKey("summary", 81) {
		t.Fatalf("expected width to change the key")
	}
	if ComputeKey("x", true) == ComputeKey("x", false) {
		t.Fatalf("expected bool to change the key")
	}
}

func TestRenderCache_GetOrCompute(t *testing.T) {
	rc := NewRenderCache(2)
	calls := 0
	render := func() string {
		calls++
		return "rendered"
	}

	k := ComputeKey("a")
	if got := rc.GetOrCompute(k, render); got != "rendered" {
		t.Fatalf("got %q", got)
	}
	rc.GetOrCompute(k, render)
	if calls != 1 {
		t.Fatalf("expected one compute, got %d", calls)
	}
	if hits, misses := rc.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("stats = %d hits, %d misses", hits, misses)
	}

	// Filling past capacity starts over.
	rc.GetOrCompute(ComputeKey("b"), render)
	rc.GetOrCompute(ComputeKey("c"), render)
	if rc.Len() != 1 {
		t.Fatalf("expected reset to one entry, got %d", rc.Len())
	}
}
