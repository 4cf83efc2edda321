package lua

import (
	"bytes"
	"errors"
	"testing"

	rt "github.com/arnodel/golua/runtime"
)

func TestBufferPointerAndLength(t *testing.T) {
	data := "pixel data bytes"
	p, n, err := bufferPointerAndLength(rt.StringValue(data))
	if err != nil {
		t.Fatalf("bufferPointerAndLength failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil pointer for non-empty buffer")
	}
	if n != len(data) {
		t.Errorf("length = %d, want %d", n, len(data))
	}
	if got := bufferView(p, n); !bytes.Equal(got, []byte(data)) {
		t.Errorf("bufferView = %q, want %q", got, data)
	}
}

func TestBufferEmptyYieldsNilPointer(t *testing.T) {
	p, n, err := bufferPointerAndLength(rt.StringValue(""))
	if err != nil {
		t.Fatalf("bufferPointerAndLength(\"\") failed: %v", err)
	}
	if p != nil || n != 0 {
		t.Errorf("empty buffer = (%v, %d), want (nil, 0)", p, n)
	}
	if v := bufferView(p, n); v != nil {
		t.Errorf("bufferView of empty buffer = %v, want nil", v)
	}
}

func TestBufferRejectsNonBuffers(t *testing.T) {
	for _, v := range []rt.Value{rt.IntValue(7), rt.BoolValue(true), rt.NilValue} {
		if _, _, err := bufferPointerAndLength(v); !errors.Is(err, ErrNotABuffer) {
			t.Errorf("bufferPointerAndLength(%v) = %v, want ErrNotABuffer", v, err)
		}
	}
}

func TestBufferViewSharesStorage(t *testing.T) {
	data := "abcd"
	p, n, err := bufferPointerAndLength(rt.StringValue(data))
	if err != nil {
		t.Fatalf("bufferPointerAndLength failed: %v", err)
	}
	view := bufferView(p, n)
	if view[0] != 'a' || view[3] != 'd' {
		t.Errorf("view = %q, want %q", view, data)
	}
	if len(view) != n {
		t.Errorf("view length = %d, want %d", len(view), n)
	}
}
