package ccff

import (
	"encoding/binary"
	"fmt"
)

// sectionHeader mirrors the on-disk per-section header:
// type(1) flags(4) offset(4) length(4) nameLen(1) name(nameLen).
type sectionHeader struct {
	Type   uint8
	Flags  uint32
	Offset uint32
	Length uint32
	Name   string
}

func (h sectionHeader) size() int {
	return sectionHeaderBase + len(h.Name)
}

func appendPreamble(buf []byte, abiVersion uint16, fileType, count uint8) []byte {
	buf = append(buf, Magic[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, abiVersion)
	return append(buf, fileType, count)
}

func appendSectionHeader(buf []byte, h sectionHeader) []byte {
	buf = append(buf, h.Type)
	buf = binary.LittleEndian.AppendUint32(buf, h.Flags)
	buf = binary.LittleEndian.AppendUint32(buf, h.Offset)
	buf = binary.LittleEndian.AppendUint32(buf, h.Length)
	buf = append(buf, uint8(len(h.Name)))
	return append(buf, h.Name...)
}

// cursor walks an input buffer with explicit bounds checks. Every take that
// would pass the end returns ErrTruncated instead; nothing ever reads past
// len(buf).
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) take(n int) ([]byte, error) {
	if n > len(c.buf)-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes at position %d, have %d", ErrTruncated, n, c.pos, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) byte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readSectionHeader parses one section header at the cursor, bounds-checking
// before the variable-length name.
func readSectionHeader(c *cursor) (sectionHeader, error) {
	var h sectionHeader
	var err error
	if h.Type, err = c.byte(); err != nil {
		return sectionHeader{}, err
	}
	if h.Flags, err = c.uint32(); err != nil {
		return sectionHeader{}, err
	}
	if h.Offset, err = c.uint32(); err != nil {
		return sectionHeader{}, err
	}
	if h.Length, err = c.uint32(); err != nil {
		return sectionHeader{}, err
	}
	nameLen, err := c.byte()
	if err != nil {
		return sectionHeader{}, err
	}
	name, err := c.take(int(nameLen))
	if err != nil {
		return sectionHeader{}, err
	}
	h.Name = string(name)
	return h, nil
}
