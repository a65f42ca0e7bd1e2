package cache

import (
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", 42)

	v, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if v.(int) != 42 {
		t.Fatalf("got %v, want 42", v)
	}

	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after Delete")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("k", "v")

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss after Clear")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected miss after Clear")
	}
}
