package ccff

import (
	"errors"
	"reflect"
	"testing"
)

func TestSectionHeaderRoundTrip(t *testing.T) {
	in := sectionHeader{Type: 7, Flags: 0xdeadbeef, Offset: 1234, Length: 5678, Name: ".symtab"}
	buf := appendSectionHeader(nil, in)
	if len(buf) != in.size() {
		t.Fatalf("wrote %d bytes, size() says %d", len(buf), in.size())
	}
	out, err := readSectionHeader(&cursor{buf: buf})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("header mismatch: %#v vs %#v", in, out)
	}
}

func TestCursorBounds(t *testing.T) {
	c := &cursor{buf: []byte{1, 2, 3}}
	if _, err := c.uint16(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.uint32(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
	// A failed take must not advance.
	b, err := c.byte()
	if err != nil || b != 3 {
		t.Fatalf("cursor advanced on failure: %v %v", b, err)
	}
	if _, err := c.take(1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated at end, got %v", err)
	}
}
