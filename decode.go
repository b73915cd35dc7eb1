package ccff

import (
	"bytes"
	"fmt"
)

// Decode parses an encoded container from data.
//
// For any buffer produced by [ContainerFile.Encode], Decode reconstructs an
// equivalent container: same ABI version, file type, section order, and
// per-section type, flags, and payload, with each section's offset now
// populated. Payload bytes are copied out of data, so the caller may reuse
// the input buffer afterwards.
//
// For arbitrary input Decode never panics and never reads outside data. It
// returns ErrTruncated if the buffer ends before the preamble, a declared
// header, or a name; ErrInvalidMagic if the first four bytes are not "CCFF";
// ErrOutOfRange if a header's (offset, length) describes bytes beyond the
// buffer; and ErrLimitExceeded if the file oversteps the configured
// [Limits]. Section names are accepted permissively: the writer-side
// printable-ASCII rule is not re-checked.
//
// Duplicate names and non-contiguous data layouts are permitted by the
// format; [WithDuplicatePolicy] and [WithStrictOffsets] control how they are
// treated.
func Decode(data []byte, opts ...ReadOption) (*ContainerFile, error) {
	cfg := readConfig{limits: defaultLimits(), duplicates: KeepLast}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if len(data) < preambleSize {
		return nil, fmt.Errorf("%w: %d bytes, preamble needs %d", ErrTruncated, len(data), preambleSize)
	}
	cur := &cursor{buf: data}
	magic, _ := cur.take(4)
	if !bytes.Equal(magic, Magic[:]) {
		return nil, fmt.Errorf("%w: % x", ErrInvalidMagic, magic)
	}
	abiVersion, _ := cur.uint16()
	fileType, _ := cur.byte()
	count, _ := cur.byte()

	if int(count) > cfg.limits.MaxSections {
		return nil, fmt.Errorf("%w: %d sections, limit is %d", ErrLimitExceeded, count, cfg.limits.MaxSections)
	}

	headers := make([]sectionHeader, 0, count)
	var totalData uint64
	for i := 0; i < int(count); i++ {
		h, err := readSectionHeader(cur)
		if err != nil {
			return nil, fmt.Errorf("section header %d: %w", i, err)
		}
		// The header's absolute (offset, length) must stay inside the
		// supplied buffer. Sum in uint64 so a hostile offset near the
		// 32-bit ceiling cannot wrap.
		if end := uint64(h.Offset) + uint64(h.Length); end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: section %q claims bytes [%d, %d) of a %d-byte buffer",
				ErrOutOfRange, h.Name, h.Offset, end, len(data))
		}
		if uint64(h.Length) > cfg.limits.MaxSectionData {
			return nil, fmt.Errorf("%w: section %q declares %d bytes", ErrLimitExceeded, h.Name, h.Length)
		}
		totalData += uint64(h.Length)
		if totalData > cfg.limits.MaxTotalData {
			return nil, fmt.Errorf("%w: declared payloads total %d bytes", ErrLimitExceeded, totalData)
		}
		headers = append(headers, h)
	}

	if cfg.strictOffsets {
		// Require exactly the layout the encoder writes: payloads
		// contiguous, in header order, starting right after the last
		// header and ending at the end of the buffer.
		want := uint32(cur.pos)
		for _, h := range headers {
			if h.Offset != want {
				return nil, fmt.Errorf("%w: section %q at offset %d, contiguous layout expects %d",
					ErrOutOfRange, h.Name, h.Offset, want)
			}
			want += h.Length
		}
		if int(want) != len(data) {
			return nil, fmt.Errorf("%w: layout ends at %d, buffer holds %d bytes", ErrOutOfRange, want, len(data))
		}
	}

	cf := New(abiVersion, fileType)
	for _, h := range headers {
		switch cfg.duplicates {
		case KeepFirst:
			if cf.Section(h.Name) != nil {
				continue
			}
		case RejectDuplicates:
			if cf.Section(h.Name) != nil {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, h.Name)
			}
		}
		sec := &Section{
			stype:     h.Type,
			flags:     h.Flags,
			offset:    h.Offset,
			hasOffset: true,
			data:      bytes.Clone(data[h.Offset : uint64(h.Offset)+uint64(h.Length)]),
		}
		cf.put(h.Name, sec)
	}
	return cf, nil
}
