package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("a", 3, 0) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("a", 3, 0) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		l.Allow("a", 3, 0)
	}
	if !l.Allow("b", 3, 0) {
		t.Fatal("key b should have its own bucket")
	}
}
