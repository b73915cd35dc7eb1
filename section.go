package ccff

// Section is a named, typed, flagged blob of caller-defined bytes inside a
// [ContainerFile]. The type tag and flags word are opaque to the engine; see
// the codec subpackage for one convention layered on the flags.
type Section struct {
	stype     uint8
	flags     uint32
	offset    uint32
	hasOffset bool
	data      []byte
}

// NewSection creates a section with no data. The section type and flags may
// be any caller-defined values.
func NewSection(stype uint8, flags uint32) *Section {
	return &Section{stype: stype, flags: flags}
}

// SetType sets the section's type tag.
func (s *Section) SetType(stype uint8) {
	s.stype = stype
}

// Type reports the section's type tag.
func (s *Section) Type() uint8 {
	return s.stype
}

// SetFlags sets the section's flags word.
func (s *Section) SetFlags(flags uint32) {
	s.flags = flags
}

// Flags reports the section's flags word.
func (s *Section) Flags() uint32 {
	return s.flags
}

// SetData replaces the section's payload and returns the previous one.
// The section takes ownership of data; the caller must not modify it after
// the call.
func (s *Section) SetData(data []byte) []byte {
	prev := s.data
	s.data = data
	return prev
}

// Data returns the section's payload. Mutating the returned slice mutates
// the section.
func (s *Section) Data() []byte {
	return s.data
}

// Offset reports the absolute byte position of the section's payload within
// the buffer it was decoded from. It is set only by [Decode]; for sections
// built in memory ok is false. There is deliberately no setter, so a section
// can never claim an on-disk location it did not come from.
func (s *Section) Offset() (offset uint32, ok bool) {
	return s.offset, s.hasOffset
}
