package ccff

import (
	"fmt"
	"iter"
)

// ContainerFile is the top-level CCFF document: an ABI version and file type
// (both caller-defined) plus an ordered collection of named sections.
// Sections iterate in insertion order, which is also the order they are
// written by [ContainerFile.Encode].
//
// A ContainerFile is not safe for concurrent mutation; callers needing that
// must serialize access themselves.
type ContainerFile struct {
	abiVersion uint16
	fileType   uint8
	entries    []containerEntry
	index      map[string]int
}

type containerEntry struct {
	name string
	sec  *Section
}

// New creates an empty container. The ABI version and file type may be any
// caller-defined values.
func New(abiVersion uint16, fileType uint8) *ContainerFile {
	return &ContainerFile{
		abiVersion: abiVersion,
		fileType:   fileType,
		index:      make(map[string]int),
	}
}

// SetABIVersion sets the container's ABI version.
func (c *ContainerFile) SetABIVersion(v uint16) {
	c.abiVersion = v
}

// ABIVersion reports the container's ABI version.
func (c *ContainerFile) ABIVersion() uint16 {
	return c.abiVersion
}

// SetFileType sets the container's file type.
func (c *ContainerFile) SetFileType(t uint8) {
	c.fileType = t
}

// FileType reports the container's file type.
func (c *ContainerFile) FileType() uint8 {
	return c.fileType
}

// AddSection inserts sec under name, or replaces the section already stored
// under name. Replacement keeps the section's original position; a fresh
// name appends. The displaced section, if any, is returned.
//
// AddSection returns ErrSectionName if name is longer than [MaxNameLen]
// bytes or contains a byte outside the printable ASCII range 0x21-0x7E, and
// ErrTooManySections if inserting a fresh name would exceed [MaxSections].
func (c *ContainerFile) AddSection(name string, sec *Section) (*Section, error) {
	if err := checkSectionName(name); err != nil {
		return nil, err
	}
	if i, ok := c.index[name]; ok {
		prev := c.entries[i].sec
		c.entries[i].sec = sec
		return prev, nil
	}
	if len(c.entries) >= MaxSections {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySections, MaxSections)
	}
	c.put(name, sec)
	return nil, nil
}

// put inserts or replaces without validating; decode uses it directly since
// the reader accepts names permissively.
func (c *ContainerFile) put(name string, sec *Section) {
	if i, ok := c.index[name]; ok {
		c.entries[i].sec = sec
		return
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, containerEntry{name: name, sec: sec})
}

func checkSectionName(name string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrSectionName, len(name), MaxNameLen)
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x21 || name[i] > 0x7e {
			return fmt.Errorf("%w: byte %#02x at index %d", ErrSectionName, name[i], i)
		}
	}
	return nil
}

// RemoveSection removes and returns the section stored under name, or nil if
// there is none. The remaining sections keep their relative order.
func (c *ContainerFile) RemoveSection(name string) *Section {
	i, ok := c.index[name]
	if !ok {
		return nil
	}
	sec := c.entries[i].sec
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].name] = j
	}
	return sec
}

// Section returns the section stored under name, or nil if there is none.
// The returned pointer is live: mutating it mutates the container.
func (c *ContainerFile) Section(name string) *Section {
	if i, ok := c.index[name]; ok {
		return c.entries[i].sec
	}
	return nil
}

// Sections iterates over (name, section) pairs in insertion order.
func (c *ContainerFile) Sections() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for _, e := range c.entries {
			if !yield(e.name, e.sec) {
				return
			}
		}
	}
}

// Len reports the number of sections.
func (c *ContainerFile) Len() int {
	return len(c.entries)
}

// Size reports the exact number of bytes the container occupies when
// encoded: the preamble, one header per section, and all payloads. Callers
// can use it to pre-size an output buffer; it always equals the length of
// the buffer [ContainerFile.Encode] produces.
func (c *ContainerFile) Size() int {
	n := preambleSize
	for _, e := range c.entries {
		n += sectionHeaderBase + len(e.name) + len(e.sec.data)
	}
	return n
}
