package cancel

import "testing"

func TestTokenLifecycle(t *testing.T) {
	tok := New()
	if tok.IsSet() {
		t.Fatal("new token should not be set")
	}

	tok.Set()
	if !tok.IsSet() {
		t.Fatal("expected token to be set")
	}

	tok.Set()
	if !tok.IsSet() {
		t.Fatal("repeated Set should remain set")
	}

	tok.Reset()
	if tok.IsSet() {
		t.Fatal("expected token to be cleared after Reset")
	}
}
