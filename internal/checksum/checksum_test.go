package checksum

import "testing"

func TestSum_Stable(t *testing.T) {
	a := Sum([]byte("hello"))
	if a != Sum([]byte("hello")) {
		t.Error("sum should be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
}

func TestCombine_OrderSensitive(t *testing.T) {
	if Combine("a", "b") == Combine("b", "a") {
		t.Error("combine should depend on order")
	}
}

func TestETag(t *testing.T) {
	if got := ETag(""); got != "" {
		t.Errorf("ETag(\"\") = %q", got)
	}
	if got := ETag(Sum([]byte("x"))); len(got) != 18 || got[0] != '"' {
		t.Errorf("ETag = %q", got)
	}
}
