package ccff

// Magic is the 4-byte CCFF file signature.
var Magic = [4]byte{'C', 'C', 'F', 'F'}

const (
	// preambleSize is the fixed portion before the section headers:
	// magic(4) + ABI version(2) + file type(1) + section count(1).
	preambleSize = 8

	// sectionHeaderBase is the fixed portion of a section header:
	// type(1) + flags(4) + offset(4) + length(4) + name length(1).
	// The name itself follows.
	sectionHeaderBase = 14
)

const (
	// MaxSections is the most sections a container can hold; the on-disk
	// section count is a single byte.
	MaxSections = 255

	// MaxNameLen is the longest permitted section name in bytes; the
	// on-disk name length is a single byte.
	MaxNameLen = 255

	// MaxSectionData is the largest permitted section payload. The on-disk
	// length field is 32 bits and the format requires the length to be
	// strictly below its maximum value.
	MaxSectionData = 1<<32 - 2
)

// Limits bounds what Decode will accept beyond the format's own caps.
// The zero value of any field selects its default. Defaults admit anything
// the format itself admits; readers handling untrusted input should tighten
// them via [WithReadLimits].
type Limits struct {
	// MaxSections caps the section count a decoded file may declare.
	MaxSections int
	// MaxSectionData caps a single declared payload length.
	MaxSectionData uint64
	// MaxTotalData caps the sum of all declared payload lengths. Because
	// the format permits overlapping data regions, this sum can exceed
	// the input buffer's length by up to 255x; the cap bounds the total
	// allocation a hostile file can force.
	MaxTotalData uint64
}

func defaultLimits() Limits {
	return Limits{
		MaxSections:    MaxSections,
		MaxSectionData: MaxSectionData,
		MaxTotalData:   1 << 32, // 4 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxSections == 0 {
		l.MaxSections = d.MaxSections
	}
	if l.MaxSectionData == 0 {
		l.MaxSectionData = d.MaxSectionData
	}
	if l.MaxTotalData == 0 {
		l.MaxTotalData = d.MaxTotalData
	}
	return l
}
