package ccff

import (
	"fmt"
	"math"
	"slices"
)

// EncodeTo appends the container's serialized form to buf and returns the
// extended buffer. Encoding after existing content is supported: each
// header's offset field is absolute within buf, counted from the start of
// buf as passed in. The container itself is left untouched and remains
// usable.
//
// EncodeTo returns ErrSectionTooLarge if any payload exceeds
// [MaxSectionData] or the layout would place data beyond 32-bit addressing,
// and ErrTooManySections if the section count somehow exceeds [MaxSections]
// (AddSection already prevents this).
func (c *ContainerFile) EncodeTo(buf []byte) ([]byte, error) {
	if len(c.entries) > MaxSections {
		return nil, fmt.Errorf("%w: %d sections, limit is %d", ErrTooManySections, len(c.entries), MaxSections)
	}
	var hdrSize, dataSize int
	for _, e := range c.entries {
		if uint64(len(e.sec.data)) > MaxSectionData {
			return nil, fmt.Errorf("%w: section %q holds %d bytes", ErrSectionTooLarge, e.name, len(e.sec.data))
		}
		hdrSize += sectionHeaderBase + len(e.name)
		dataSize += len(e.sec.data)
	}
	if end := uint64(len(buf)) + uint64(preambleSize) + uint64(hdrSize) + uint64(dataSize); end > math.MaxUint32 {
		return nil, fmt.Errorf("%w: layout ends at byte %d, beyond 32-bit addressing", ErrSectionTooLarge, end)
	}

	buf = slices.Grow(buf, preambleSize+hdrSize+dataSize)
	buf = appendPreamble(buf, c.abiVersion, c.fileType, uint8(len(c.entries)))

	// Data offsets are cumulative: the first payload sits immediately
	// after the last header, each subsequent one after its predecessor.
	offset := uint32(len(buf) + hdrSize)
	for _, e := range c.entries {
		buf = appendSectionHeader(buf, sectionHeader{
			Type:   e.sec.stype,
			Flags:  e.sec.flags,
			Offset: offset,
			Length: uint32(len(e.sec.data)),
			Name:   e.name,
		})
		offset += uint32(len(e.sec.data))
	}
	for _, e := range c.entries {
		buf = append(buf, e.sec.data...)
	}
	return buf, nil
}

// Encode serializes the container into a freshly allocated buffer sized by
// [ContainerFile.Size].
func (c *ContainerFile) Encode() ([]byte, error) {
	return c.EncodeTo(make([]byte, 0, c.Size()))
}
