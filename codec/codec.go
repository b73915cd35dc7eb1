// Package codec layers an optional payload-compression convention on top of
// the CCFF engine. The engine treats a section's flags word as opaque; this
// package claims the low five bits of it: the low nibble carries a codec id
// and bit 4 marks payloads that begin with an 8-byte little-endian
// raw-length prefix. Callers that use other flag bits keep them untouched.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a payload codec.
type Compression uint32

const (
	None   Compression = 0
	Snappy Compression = 1
	Zstd   Compression = 2
	LZ4    Compression = 3
	Brotli Compression = 4
)

const (
	// CompressionMask selects the codec id bits within a section's flags.
	CompressionMask uint32 = 0x0000000f
	// FlagHasRawLen marks payloads carrying an 8-byte little-endian
	// uncompressed-length prefix. Set for every codec except None.
	FlagHasRawLen uint32 = 0x00000010
)

// DefaultMaxRaw bounds the decompressed size Unpack will produce when the
// caller passes no explicit cap.
const DefaultMaxRaw uint64 = 1 << 30 // 1 GiB

var (
	ErrUnknownCompression = errors.New("ccff/codec: unknown compression")
	ErrInvalidPayload     = errors.New("ccff/codec: invalid payload")
	ErrLimitExceeded      = errors.New("ccff/codec: limit exceeded")
)

// FromFlags extracts the codec id from a section's flags word.
func FromFlags(flags uint32) Compression {
	return Compression(flags & CompressionMask)
}

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Brotli:
		return "brotli"
	default:
		return fmt.Sprintf("compression(%d)", uint32(c))
	}
}

// Parse maps a codec name used by manifests and CLI flags back to its id.
// The empty string means None.
func Parse(s string) (Compression, error) {
	switch s {
	case "", "none":
		return None, nil
	case "snappy":
		return Snappy, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "brotli":
		return Brotli, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// Pack compresses raw with the given codec and returns the flag bits to OR
// into the section's flags together with the payload to store. For None the
// payload is raw itself, unprefixed; for every other codec it is an 8-byte
// little-endian raw length followed by the compressed bytes.
func Pack(comp Compression, raw []byte) (flags uint32, payload []byte, err error) {
	if comp == None {
		return uint32(None), raw, nil
	}
	var compressed []byte
	switch comp {
	case Snappy:
		compressed = snappy.Encode(nil, raw)
	case Zstd:
		compressed, err = zstdCompress(raw)
	case LZ4:
		compressed, err = lz4Compress(raw)
	case Brotli:
		compressed, err = brotliCompress(raw)
	default:
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownCompression, comp)
	}
	if err != nil {
		return 0, nil, err
	}
	payload = make([]byte, 8, 8+len(compressed))
	binary.LittleEndian.PutUint64(payload, uint64(len(raw)))
	payload = append(payload, compressed...)
	return uint32(comp) | FlagHasRawLen, payload, nil
}

// Unpack reverses Pack. It reads the codec id and raw-length flag from
// flags, decompresses payload, and enforces maxRaw against both the declared
// and the actual expanded size so a hostile file cannot force an oversized
// allocation. A maxRaw of 0 applies [DefaultMaxRaw].
func Unpack(flags uint32, payload []byte, maxRaw uint64) ([]byte, error) {
	if maxRaw == 0 {
		maxRaw = DefaultMaxRaw
	}
	comp := FromFlags(flags)
	hasLen := flags&FlagHasRawLen != 0
	if comp == None {
		if hasLen {
			return nil, fmt.Errorf("%w: uncompressed payload with raw-length prefix flag", ErrInvalidPayload)
		}
		return payload, nil
	}
	if !hasLen {
		return nil, fmt.Errorf("%w: compressed payload without raw-length prefix flag", ErrInvalidPayload)
	}
	if len(payload) < 8 {
		return nil, fmt.Errorf("%w: payload too short for raw-length prefix", ErrInvalidPayload)
	}
	rawLen := binary.LittleEndian.Uint64(payload[:8])
	if rawLen > maxRaw {
		return nil, fmt.Errorf("%w: declared raw length %d exceeds cap %d", ErrLimitExceeded, rawLen, maxRaw)
	}
	compressed := payload[8:]

	var out []byte
	var err error
	switch comp {
	case Snappy:
		out, err = snappyDecompress(compressed, rawLen)
	case Zstd:
		out, err = zstdDecompress(compressed, rawLen)
	case LZ4:
		out, err = lz4Decompress(compressed, rawLen)
	case Brotli:
		out, err = brotliDecompress(compressed, rawLen)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != rawLen {
		return nil, fmt.Errorf("%w: decompressed to %d bytes, declared %d", ErrInvalidPayload, len(out), rawLen)
	}
	return out, nil
}

func snappyDecompress(in []byte, expected uint64) ([]byte, error) {
	n, err := snappy.DecodedLen(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if uint64(n) > expected {
		return nil, fmt.Errorf("%w: snappy expands beyond declared size", ErrInvalidPayload)
	}
	out, err := snappy.Decode(nil, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return out, nil
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: zstd expands beyond declared size", ErrInvalidPayload)
	}
	return out, nil
}

func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	out, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: lz4 expands beyond declared size", ErrInvalidPayload)
	}
	return out, nil
}

func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(in); err != nil {
		_ = bw.Close()
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	out, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: brotli expands beyond declared size", ErrInvalidPayload)
	}
	return out, nil
}
