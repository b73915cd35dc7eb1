package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

var allCodecs = []Compression{None, Snappy, Zstd, LZ4, Brotli}

func TestPackUnpackRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte("compressible payload "), 100)
	for _, comp := range allCodecs {
		t.Run(comp.String(), func(t *testing.T) {
			flags, payload, err := Pack(comp, raw)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			if FromFlags(flags) != comp {
				t.Fatalf("flags %#x carry codec %v", flags, FromFlags(flags))
			}
			if comp != None && uint64(len(payload)) >= uint64(len(raw))+8 {
				t.Logf("%v did not shrink the payload (%d -> %d)", comp, len(raw), len(payload))
			}
			got, err := Unpack(flags, payload, 0)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if !bytes.Equal(got, raw) {
				t.Fatal("round trip mismatch")
			}
		})
	}
}

func TestPackUnpackEmptyPayload(t *testing.T) {
	for _, comp := range allCodecs {
		t.Run(comp.String(), func(t *testing.T) {
			flags, payload, err := Pack(comp, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unpack(flags, payload, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 0 {
				t.Fatalf("got %d bytes", len(got))
			}
		})
	}
}

func TestPackUnknownCompression(t *testing.T) {
	if _, _, err := Pack(Compression(9), []byte("x")); !errors.Is(err, ErrUnknownCompression) {
		t.Fatalf("want ErrUnknownCompression, got %v", err)
	}
}

func TestUnpackFlagMisuse(t *testing.T) {
	t.Run("none with raw-length flag", func(t *testing.T) {
		_, err := Unpack(uint32(None)|FlagHasRawLen, []byte("payload!"), 0)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("want ErrInvalidPayload, got %v", err)
		}
	})
	t.Run("compressed without raw-length flag", func(t *testing.T) {
		_, err := Unpack(uint32(Zstd), []byte("payload!"), 0)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("want ErrInvalidPayload, got %v", err)
		}
	})
	t.Run("unknown codec id", func(t *testing.T) {
		_, err := Unpack(uint32(9)|FlagHasRawLen, make([]byte, 16), 0)
		if !errors.Is(err, ErrUnknownCompression) {
			t.Fatalf("want ErrUnknownCompression, got %v", err)
		}
	})
	t.Run("short prefix", func(t *testing.T) {
		_, err := Unpack(uint32(Zstd)|FlagHasRawLen, []byte{1, 2, 3}, 0)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("want ErrInvalidPayload, got %v", err)
		}
	})
}

func TestUnpackRejectsTamperedPrefix(t *testing.T) {
	raw := bytes.Repeat([]byte("abcd"), 64)
	for _, comp := range []Compression{Snappy, Zstd, LZ4, Brotli} {
		t.Run(comp.String(), func(t *testing.T) {
			flags, payload, err := Pack(comp, raw)
			if err != nil {
				t.Fatal(err)
			}
			for _, declared := range []uint64{uint64(len(raw)) - 1, uint64(len(raw)) + 1} {
				tampered := bytes.Clone(payload)
				binary.LittleEndian.PutUint64(tampered[:8], declared)
				if _, err := Unpack(flags, tampered, 0); err == nil {
					t.Fatalf("declared %d accepted for %d raw bytes", declared, len(raw))
				}
			}
		})
	}
}

func TestUnpackEnforcesRawCap(t *testing.T) {
	raw := bytes.Repeat([]byte{0}, 4096)
	flags, payload, err := Pack(Zstd, raw)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Unpack(flags, payload, 100)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
	if _, err := Unpack(flags, payload, uint64(len(raw))); err != nil {
		t.Fatalf("cap equal to raw size: %v", err)
	}
}

func TestParseNames(t *testing.T) {
	for _, comp := range allCodecs {
		got, err := Parse(comp.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", comp.String(), err)
		}
		if got != comp {
			t.Fatalf("Parse(%q) = %v", comp.String(), got)
		}
	}
	if got, err := Parse(""); err != nil || got != None {
		t.Fatalf("Parse(\"\") = %v, %v", got, err)
	}
	if _, err := Parse("gzip"); !errors.Is(err, ErrUnknownCompression) {
		t.Fatalf("want ErrUnknownCompression, got %v", err)
	}
}
